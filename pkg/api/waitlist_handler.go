// Copyright 2025 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"errors"
	"net/http"

	"github.com/eduai/principal-server/pkg/metrics"
	"github.com/eduai/principal-server/pkg/stor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jtacoma/uritemplates"
	log "github.com/sirupsen/logrus"
)

// JoinWaitlist adds a visitor to the waitlist.
// The payload is form encoded, as posted by the landing page.
func (a *APICtrl) JoinWaitlist(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	entry := &stor.WaitlistEntry{
		UUID:   uuid.New().String(),
		Email:  r.PostFormValue("email"),
		Name:   r.PostFormValue("name"),
		Status: stor.STATUS_PENDING,
	}
	if err := entry.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	// a given email can only join the waitlist once
	if _, err := a.Store.Waitlist().GetByEmail(entry.Email); err == nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("Email already registered")))
		return
	}

	// db create
	if err := a.Store.Waitlist().Create(entry); err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	// analytics
	a.recordEvent(stor.EVENT_WAITLIST, entry.UUID)

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, a.newSignupResponse("Successfully added to waitlist!", entry.UUID, "waitlist")); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// ListWaitlist lists waitlist entries, paginated.
func (a *APICtrl) ListWaitlist(w http.ResponseWriter, r *http.Request) {

	page, perPage := getPagination(r)

	entries, err := a.Store.Waitlist().List(page, perPage)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	if err := render.RenderList(w, r, NewWaitlistListResponse(entries)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// DeleteWaitlistEntry removes an existing entry from the waitlist.
func (a *APICtrl) DeleteWaitlistEntry(w http.ResponseWriter, r *http.Request) {

	var entry *stor.WaitlistEntry
	var err error

	// get the existing entry
	if entryID := chi.URLParam(r, "entryID"); entryID != "" {
		entry, err = a.Store.Waitlist().Get(entryID)
	} else {
		render.Render(w, r, ErrNotFound)
		return
	}
	if err != nil {
		render.Render(w, r, ErrNotFound)
		return
	}

	// db delete
	err = a.Store.Waitlist().Delete(entry)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	if err := render.Render(w, r, NewMessageResponse("Deleted")); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// recordEvent stores an analytics event and bumps the matching Prometheus
// counter; a failure is logged, never fatal.
func (a *APICtrl) recordEvent(eventType, subjectID string) {
	switch eventType {
	case stor.EVENT_PAGE_VIEW:
		metrics.PageViews.Inc()
	case stor.EVENT_WAITLIST:
		metrics.Signups.WithLabelValues("waitlist").Inc()
	case stor.EVENT_ENROLL:
		metrics.Signups.WithLabelValues("enrollment").Inc()
	}

	err := a.Store.Event().Create(&stor.Event{Type: eventType, SubjectID: subjectID})
	if err != nil {
		log.Errorf("Failed to record %s event: %v", eventType, err)
	}
}

// --
// Request and Response payloads for the REST api.
// --

// SignupResponse is returned after a successful waitlist or enrollment signup.
type SignupResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Details string `json:"details,omitempty"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// WaitlistEntryResponse is the response waitlist entry payload.
type WaitlistEntryResponse struct {
	*stor.WaitlistEntry
}

// newSignupResponse creates a signup confirmation, with a details link
// expanded from the configured URI template when one exists.
func (a *APICtrl) newSignupResponse(message, id, linkName string) *SignupResponse {
	resp := &SignupResponse{Message: message, ID: id}
	if tpl, ok := a.Config.Signup.Links[linkName]; ok {
		template, err := uritemplates.Parse(tpl)
		if err != nil {
			log.Errorf("Invalid %s link template: %v", linkName, err)
			return resp
		}
		resp.Details, _ = template.Expand(map[string]interface{}{"id": id})
	}
	return resp
}

// NewMessageResponse creates a rendered confirmation message.
func NewMessageResponse(message string) *MessageResponse {
	return &MessageResponse{Message: message}
}

// NewWaitlistListResponse creates a rendered list of waitlist entries.
func NewWaitlistListResponse(entries *[]stor.WaitlistEntry) []render.Renderer {
	list := []render.Renderer{}
	for i := 0; i < len(*entries); i++ {
		list = append(list, &WaitlistEntryResponse{WaitlistEntry: &(*entries)[i]})
	}
	return list
}

// Render processes responses before marshalling.
func (resp *SignupResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (resp *MessageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (resp *WaitlistEntryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
