// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"net/http"
	"time"

	"github.com/eduai/principal-server/pkg/stor"
	"github.com/go-chi/render"
)

// GetStats returns public aggregate counters for the landing page.
func (a *APICtrl) GetStats(w http.ResponseWriter, r *http.Request) {

	pageViews, err := a.Store.Event().Count(stor.EVENT_PAGE_VIEW)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	waitlistCount, err := a.Store.Waitlist().Count()
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	enrollmentCount, err := a.Store.Enrollment().Count()
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	lastUpdated, err := a.Store.Event().LastTimestamp()
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	stats := &StatsResponse{
		PageViews:       pageViews,
		WaitlistCount:   waitlistCount,
		EnrollmentCount: enrollmentCount,
	}
	if lastUpdated != nil {
		stats.LastUpdated = lastUpdated.Format(time.RFC3339)
	}

	if err := render.Render(w, r, stats); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// GetDashboardData returns detailed aggregates for the admin dashboard.
func (a *APICtrl) GetDashboardData(w http.ResponseWriter, r *http.Request) {

	data, err := a.Store.Dashboard().GetDashboard()
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	if err := render.Render(w, r, &DashboardDataResponse{DashboardData: data}); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// Health reports liveness, current time and datastore reachability.
func (a *APICtrl) Health(w http.ResponseWriter, r *http.Request) {

	health := &HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
		DBOk:   a.Store.Ping() == nil,
	}
	if !health.DBOk {
		health.Status = "degraded"
	}

	render.JSON(w, r, health)
}

// --
// Response payloads for the REST api.
// --

// StatsResponse is the public stats payload.
type StatsResponse struct {
	PageViews       int64  `json:"page_views"`
	WaitlistCount   int64  `json:"waitlist_count"`
	EnrollmentCount int64  `json:"enrollment_count"`
	LastUpdated     string `json:"last_updated,omitempty"`
}

// DashboardDataResponse is the dashboard payload.
type DashboardDataResponse struct {
	*stor.DashboardData
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	DBOk   bool   `json:"db_ok"`
}

// Render processes responses before marshalling.
func (resp *StatsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (resp *DashboardDataResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
