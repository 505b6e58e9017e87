// Copyright 2025 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"net/http"

	"github.com/eduai/principal-server/pkg/stor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// SubmitEnrollment records a course enrollment.
// The payload is form encoded, as posted by the landing page.
func (a *APICtrl) SubmitEnrollment(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	enrollment := &stor.Enrollment{
		UUID:            uuid.New().String(),
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Track:           r.PostFormValue("track"),
		Experience:      r.PostFormValue("experience"),
		Newsletter:      formBool(r, "newsletter", true),
		ScholarshipInfo: formBool(r, "scholarship_info", true),
		Status:          stor.STATUS_PENDING,
	}
	if err := enrollment.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	// db create
	if err := a.Store.Enrollment().Create(enrollment); err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	// analytics
	a.recordEvent(stor.EVENT_ENROLL, enrollment.UUID)

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, a.newSignupResponse("Enrollment submitted!", enrollment.UUID, "enrollment")); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// ListEnrollments lists enrollments, paginated; an optional track
// query parameter restricts the result to one track.
func (a *APICtrl) ListEnrollments(w http.ResponseWriter, r *http.Request) {

	var enrollments *[]stor.Enrollment
	var err error

	if track := r.URL.Query().Get("track"); track != "" {
		enrollments, err = a.Store.Enrollment().FindByTrack(track)
	} else {
		page, perPage := getPagination(r)
		enrollments, err = a.Store.Enrollment().List(page, perPage)
	}
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	if err := render.RenderList(w, r, NewEnrollmentListResponse(enrollments)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// DeleteEnrollment removes an existing enrollment.
func (a *APICtrl) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {

	var enrollment *stor.Enrollment
	var err error

	// get the existing enrollment
	if enrollmentID := chi.URLParam(r, "enrollmentID"); enrollmentID != "" {
		enrollment, err = a.Store.Enrollment().Get(enrollmentID)
	} else {
		render.Render(w, r, ErrNotFound)
		return
	}
	if err != nil {
		render.Render(w, r, ErrNotFound)
		return
	}

	// db delete
	err = a.Store.Enrollment().Delete(enrollment)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	if err := render.Render(w, r, NewMessageResponse("Deleted")); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// formBool reads a boolean form value; missing values keep the default.
func formBool(r *http.Request, field string, def bool) bool {
	v := r.PostFormValue(field)
	switch v {
	case "":
		return def
	case "true", "1", "on", "yes":
		return true
	}
	return false
}

// --
// Request and Response payloads for the REST api.
// --

// EnrollmentResponse is the response enrollment payload.
type EnrollmentResponse struct {
	*stor.Enrollment
}

// NewEnrollmentListResponse creates a rendered list of enrollments.
func NewEnrollmentListResponse(enrollments *[]stor.Enrollment) []render.Renderer {
	list := []render.Renderer{}
	for i := 0; i < len(*enrollments); i++ {
		list = append(list, &EnrollmentResponse{Enrollment: &(*enrollments)[i]})
	}
	return list
}

// Render processes responses before marshalling.
func (resp *EnrollmentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
