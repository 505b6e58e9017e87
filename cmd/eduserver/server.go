// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

// The EduAI Principal Server powers the EduAI school management platform:
// waitlist signups, course enrollments and usage analytics.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/go-chi/chi/v5"

	"github.com/eduai/principal-server/pkg/conf"
	"github.com/eduai/principal-server/pkg/stor"
)

// Server context
type Server struct {
	*conf.Config
	stor.Store
	Router *chi.Mux
}

func init() {
	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)
}

func main() {

	s := Server{}

	// Initialize the configuration from a config file
	c, err := conf.Init(os.Getenv("EDUAI_SERVER_CONFIG"))
	if err != nil {
		log.Println("Configuration failed: " + err.Error())
		os.Exit(1)
	}
	s.Config = c

	// Set the log level and format
	if s.Config.LogLevel != "" {
		level, err := log.ParseLevel(s.Config.LogLevel)
		if err != nil {
			log.Println("Invalid log level specified, defaulting to debug")
			level = log.DebugLevel
		}
		log.SetLevel(level)
		log.SetFormatter(&log.TextFormatter{})
	}

	s.initialize()

	// Graceful shutdown
	server := &http.Server{
		Addr:    ":" + strconv.Itoa(c.Port),
		Handler: s.Router,
	}

	// System signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Println("Server starting on port " + strconv.Itoa(c.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutdown requested, initiating graceful shutdown...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Error during shutdown: %v", err)
	}
	log.Println("Server halted.")
}

// initialize sets the database and routes
func (s *Server) initialize() {
	var err error

	// Init database
	s.Store, err = stor.Init(s.Config.Dsn)
	if err != nil {
		log.Println("Database setup failed: " + err.Error())
		os.Exit(1)
	}

	// Init the routes
	s.Router = s.setRoutes()
}
