// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/eduai/principal-server/pkg/stor"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReportEnrollments generates a CSV report of enrollments for a specific month or date
func (a *APICtrl) ReportEnrollments(w http.ResponseWriter, r *http.Request) {
	log.Debug("Report Enrollments, monthly or daily")

	var enrollments *[]stor.Enrollment
	var err error
	var period string

	// Check for month parameter
	if month := r.URL.Query().Get("month"); month != "" {
		if date := r.URL.Query().Get("date"); date != "" {
			render.Render(w, r, ErrInvalidRequest(errors.New("cannot specify both month and date parameters")))
			return
		}
		enrollments, err = a.Store.Enrollment().FindByDate(month)
		period = month
	} else if date := r.URL.Query().Get("date"); date != "" {
		enrollments, err = a.Store.Enrollment().FindByDate(date)
		period = date
	} else {
		render.Render(w, r, ErrInvalidRequest(errors.New("missing required parameter: either month (YYYY-MM) or date (YYYY-MM-DD)")))
		return
	}

	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	// Set CSV headers
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"enrollments-report-%s.csv\"", url.QueryEscape(period)))

	// Create CSV writer
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	// Write CSV header
	header := []string{"CreatedAt", "Name", "Email", "Track", "Experience", "Newsletter", "ScholarshipInfo", "Status"}
	if err := csvWriter.Write(header); err != nil {
		log.Errorf("Error writing CSV header: %v", err)
		render.Render(w, r, ErrServer(err))
		return
	}

	// Write enrollment data
	for _, enrollment := range *enrollments {
		record := []string{
			enrollment.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			enrollment.Name,
			enrollment.Email,
			trackDisplayName(enrollment.Track),
			enrollment.Experience,
			fmt.Sprintf("%t", enrollment.Newsletter),
			fmt.Sprintf("%t", enrollment.ScholarshipInfo),
			enrollment.Status,
		}

		if err := csvWriter.Write(record); err != nil {
			log.Errorf("Error writing CSV record: %v", err)
			render.Render(w, r, ErrServer(err))
			return
		}
	}
}

// trackDisplayName turns a track slug like "ai-fundamentals" into a
// readable title like "Ai Fundamentals".
func trackDisplayName(track string) string {
	c := cases.Title(language.Und, cases.NoLower)
	return c.String(strings.ReplaceAll(track, "-", " "))
}
