// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eduai/principal-server/pkg/stor"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
)

// LegacySchema is the JSON Schema of the data.json document produced by
// the first version of the platform, which kept its datastore in a flat file.
const LegacySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["waitlist", "enrollments"],
	"properties": {
		"waitlist": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["email", "created_at"],
				"properties": {
					"id": {"type": "string"},
					"email": {"type": "string", "format": "email"},
					"name": {"type": ["string", "null"]},
					"type": {"type": "string"},
					"created_at": {"type": "string"},
					"status": {"type": "string"}
				}
			}
		},
		"enrollments": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "email", "track", "experience", "created_at"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"email": {"type": "string", "format": "email"},
					"track": {"type": "string"},
					"experience": {"type": "string"},
					"newsletter": {"type": "boolean"},
					"scholarship_info": {"type": "boolean"},
					"created_at": {"type": "string"},
					"status": {"type": "string"}
				}
			}
		},
		"analytics": {"type": "object"}
	}
}`

// legacyDocument mirrors the legacy data.json structure.
type legacyDocument struct {
	Waitlist []struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		CreatedAt string `json:"created_at"`
		Status    string `json:"status"`
	} `json:"waitlist"`
	Enrollments []struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Email           string `json:"email"`
		Track           string `json:"track"`
		Experience      string `json:"experience"`
		Newsletter      *bool  `json:"newsletter"`
		ScholarshipInfo *bool  `json:"scholarship_info"`
		CreatedAt       string `json:"created_at"`
		Status          string `json:"status"`
	} `json:"enrollments"`
}

// ImportLegacyData imports a legacy data.json document. The payload is
// validated against the legacy schema before any row is written; rows
// whose uuid or email is already present are skipped and counted.
func (a *APICtrl) ImportLegacyData(w http.ResponseWriter, r *http.Request) {

	body, err := io.ReadAll(r.Body)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	// schema validation
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(LegacySchema),
		gojsonschema.NewBytesLoader(body))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		render.Render(w, r, ErrInvalidRequest(errors.New("invalid legacy document: "+strings.Join(details, "; "))))
		return
	}

	var doc legacyDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	report := &ImportReport{}

	for _, item := range doc.Waitlist {
		entry := stor.WaitlistEntry{
			UUID:      item.ID,
			Email:     item.Email,
			Name:      item.Name,
			Status:    item.Status,
			CreatedAt: parseLegacyTime(item.CreatedAt),
		}
		if entry.UUID == "" {
			entry.UUID = uuid.New().String()
		}
		if entry.Status == "" {
			entry.Status = stor.STATUS_PENDING
		}
		// skip rows already present
		if _, err := a.Store.Waitlist().GetByEmail(entry.Email); err == nil {
			report.WaitlistSkipped++
			continue
		}
		if err := a.Store.Waitlist().Create(&entry); err != nil {
			log.Errorf("Legacy import, waitlist row %s: %v", entry.Email, err)
			report.WaitlistSkipped++
			continue
		}
		report.WaitlistImported++
	}

	for _, item := range doc.Enrollments {
		enrollment := stor.Enrollment{
			UUID:            item.ID,
			Name:            item.Name,
			Email:           item.Email,
			Track:           item.Track,
			Experience:      item.Experience,
			Newsletter:      item.Newsletter == nil || *item.Newsletter,
			ScholarshipInfo: item.ScholarshipInfo == nil || *item.ScholarshipInfo,
			Status:          item.Status,
			CreatedAt:       parseLegacyTime(item.CreatedAt),
		}
		if enrollment.UUID == "" {
			enrollment.UUID = uuid.New().String()
		}
		if enrollment.Status == "" {
			enrollment.Status = stor.STATUS_PENDING
		}
		if _, err := a.Store.Enrollment().Get(enrollment.UUID); err == nil {
			report.EnrollmentsSkipped++
			continue
		}
		if err := a.Store.Enrollment().Create(&enrollment); err != nil {
			log.Errorf("Legacy import, enrollment row %s: %v", enrollment.Email, err)
			report.EnrollmentsSkipped++
			continue
		}
		report.EnrollmentsImported++
	}

	log.Infof("Legacy import: %d waitlist, %d enrollments, %d skipped",
		report.WaitlistImported, report.EnrollmentsImported,
		report.WaitlistSkipped+report.EnrollmentsSkipped)

	if err := render.Render(w, r, report); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// ResetDatastore wipes all rows and recreates the schema.
func (a *APICtrl) ResetDatastore(w http.ResponseWriter, r *http.Request) {

	if err := a.Store.Reset(); err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	log.Warn("Datastore reset")

	if err := render.Render(w, r, NewMessageResponse("Database reset")); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// parseLegacyTime parses the timestamps written by the legacy service,
// ISO 8601 with or without timezone and sub-second digits.
func parseLegacyTime(value string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}

// --
// Response payloads for the REST api.
// --

// ImportReport summarizes a legacy import.
type ImportReport struct {
	WaitlistImported    int `json:"waitlist_imported"`
	WaitlistSkipped     int `json:"waitlist_skipped"`
	EnrollmentsImported int `json:"enrollments_imported"`
	EnrollmentsSkipped  int `json:"enrollments_skipped"`
}

// Render processes responses before marshalling.
func (resp *ImportReport) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
