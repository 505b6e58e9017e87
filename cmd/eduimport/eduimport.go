// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

// eduimport uploads legacy data.json exports to an EduAI Principal Server

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// EduAI Import configuration
type Config struct {
	InputPath   string `split_words:"true"`
	ServerUrl   string `split_words:"true" envconfig:"server_url"`
	Username    string
	Password    string
	ArchivePath string `split_words:"true"`
	Verbose     bool
}

func init() {
	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
}

func usage() {
	fmt.Println("Usage: eduimport [-serve] [-input] [-verbose]")
	flag.PrintDefaults()
}

func main() {

	// parse the command line
	serve := flag.Bool("serve", false, "if set, watch the input directory as a server")
	input := flag.String("input", "", "legacy data.json file path; only used in command line")
	verbose := flag.Bool("verbose", false, "if set, display info messages; if not set, display only warnings and errors.")
	help := flag.Bool("help", false, "shows information")

	flag.Parse()

	if *help {
		usage()
		os.Exit(1)
	}

	var c Config

	// init config from command line flags
	c.InputPath = filepath.Dir(*input)
	fileName := filepath.Base(*input)
	c.Verbose = *verbose

	// process environment variables
	// EDUIMPORT_INPUT_PATH
	// EDUIMPORT_SERVER_URL
	// EDUIMPORT_USERNAME
	// EDUIMPORT_PASSWORD
	// EDUIMPORT_ARCHIVE_PATH
	// EDUIMPORT_VERBOSE
	err := envconfig.Process("eduimport", &c)
	if err != nil {
		log.Errorln("Configuration failed: " + err.Error())
		os.Exit(1)
	}

	// the verbose flag acts on the info level
	if !c.Verbose {
		log.SetLevel(log.WarnLevel)
	}

	if c.ServerUrl == "" {
		log.Errorln("Missing server url")
		os.Exit(1)
	}

	if *serve {
		log.Warnln("Entering server mode")
		log.Infoln("Watching directory: ", c.InputPath)
		// start the utility as a server
		activateServer(c)
	} else {
		// run the utility as a command line tool
		err = processFile(c, fileName)
		if err != nil {
			log.Errorf("Error processing file %s: %v", fileName, err)
			os.Exit(1)
		}
	}

}
