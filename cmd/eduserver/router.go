// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/eduai/principal-server/pkg/api"
	"github.com/eduai/principal-server/pkg/metrics"
	mw "github.com/eduai/principal-server/pkg/middleware"
)

func (s *Server) setRoutes() *chi.Mux {

	// Set api controller dependencies
	a := api.NewAPICtrl(s.Config, s.Store)

	// Define the router
	r := chi.NewRouter()

	// Recovery middleware
	r.Use(middleware.Recoverer)

	// Heartbeat (excluded from logs)
	r.Get("/health", a.Health)

	// Prometheus metrics (excluded from logs and self-instrumentation)
	r.Method("GET", "/metrics", metrics.Handler())

	// Rate limiter for the public signup routes
	limiter := mw.NewRateLimiter(s.Config.RateLimit.PerSecond, s.Config.RateLimit.Burst)
	limiter.CleanupLoop(10*time.Minute, time.Hour)

	// Group for all other routes
	r.Group(func(r chi.Router) {
		// Logger middleware
		r.Use(middleware.Logger)
		r.Use(metrics.Middleware)

		r.NotFound(notFoundProblemDetail)

		// CORS Configuration
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.Origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))

		// Landing page
		r.Get("/", a.LandingPage)

		// Static resources management (optional)
		if s.Config.Resources != "" {
			r.Group(func(r chi.Router) {
				resourceDir := s.Config.Resources
				path := "/static/*"

				r.Get(path, func(w http.ResponseWriter, r *http.Request) {
					rctx := chi.RouteContext(r.Context())
					pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
					fs := http.StripPrefix(pathPrefix, http.FileServer(http.Dir(resourceDir)))
					fs.ServeHTTP(w, r)
				})
			})
		}

		// Public signup and stats routes
		r.Group(func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.With(limiter.Handler).Post("/api/waitlist", a.JoinWaitlist)
			r.With(limiter.Handler).Post("/api/enroll", a.SubmitEnrollment)
			r.Get("/api/stats", a.GetStats)
		})

		// Private Routes
		// Require Authentication
		credentials := make(map[string]string)
		credentials[s.Config.Access.Username] = s.Config.Access.Password

		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth("restricted", credentials))
			r.Use(render.SetContentType(render.ContentTypeJSON))

			// Waitlist administration
			// GET /api/waitlist, DELETE /api/waitlist/123
			r.With(paginate).Get("/api/waitlist", a.ListWaitlist)
			r.Delete("/api/waitlist/{entryID}", a.DeleteWaitlistEntry)

			// Enrollment administration
			// GET /api/enrollments{?track}, DELETE /api/enrollments/123
			r.With(paginate).Get("/api/enrollments", a.ListEnrollments)
			r.Delete("/api/enrollments/{enrollmentID}", a.DeleteEnrollment)
			// GET /api/reports/enrollments{?month,date}
			r.Get("/api/reports/enrollments", a.ReportEnrollments)

			// Legacy data import and datastore reset
			r.Post("/api/import", a.ImportLegacyData)
			r.Post("/api/reset", a.ResetDatastore)
		})

		// Dashboard data
		r.Post("/dashdata/login", Login(s.Config)) // POST /dashdata/login
		// Require JWT Authentication
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.Config))
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Route("/dashdata", func(r chi.Router) {
				r.Get("/data", a.GetDashboardData) // GET /dashdata/data
			})
		})

	})

	return r
}

// paginate middleware
func paginate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// default values
		page := 1
		perPage := 20

		// read query parameters
		q := r.URL.Query()
		if p := q.Get("page"); p != "" {
			if val, err := strconv.Atoi(p); err == nil && val > 0 {
				page = val
			}
		}
		if pp := q.Get("per_page"); pp != "" {
			if val, err := strconv.Atoi(pp); err == nil && val > 0 {
				perPage = val
			}
		}

		// add to context
		ctx := context.WithValue(r.Context(), api.PageKey, page)
		ctx = context.WithValue(ctx, api.PerPageKey, perPage)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// notFoundProblemDetail formats not found errors as problem details, for the sake of consistency.
func notFoundProblemDetail(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{"type": "about:blank", "title": "Endpoint not found."}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)

	json.NewEncoder(w).Encode(response)
}
