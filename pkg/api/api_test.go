package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/eduai/principal-server/pkg/conf"
	"github.com/eduai/principal-server/pkg/stor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Server context
type Server struct {
	Config *conf.Config
	stor.Store
	Router *chi.Mux
}

// s is the server variable shared by all tests
var s Server

// WaitlistEntryTest data model
type WaitlistEntryTest struct {
	UUID   string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// EnrollmentTest data model
type EnrollmentTest struct {
	UUID            string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Track           string `json:"track"`
	Experience      string `json:"experience"`
	Newsletter      bool   `json:"newsletter"`
	ScholarshipInfo bool   `json:"scholarship_info"`
	Status          string `json:"status"`
}

// ---
// Utilities
// ---
func setConfig() *conf.Config {

	c := conf.Config{
		Dsn: "sqlite3://file::memory:?cache=shared",
		Access: conf.Access{
			Username: "user",
			Password: "password",
		},
		Signup: conf.Signup{
			Links: map[string]string{
				"waitlist":   "http://localhost/waitlist/{id}",
				"enrollment": "http://localhost/enrollments/{id}",
			},
		},
	}

	return &c
}

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

func checkResponseCode(t *testing.T, expected int, response *httptest.ResponseRecorder) bool {
	ok := true
	if expected != response.Code {
		t.Errorf("Expected response code %d. Got %d\n", expected, response.Code)
		t.Log(response.Body.String())
		ok = false
	}
	return ok
}

// ---
// Main Test
// ---

func TestMain(m *testing.M) {

	s.Config = setConfig()

	// Setup the database
	var err error
	s.Store, err = stor.Init(s.Config.Dsn)
	if err != nil {
		panic("Database setup failed")
	}

	// Set a context for handlers
	a := NewAPICtrl(s.Config, s.Store)

	// Define the router
	r := chi.NewRouter()

	s.Router = r

	r.Use(middleware.RequestID)
	//r.Use(middleware.Logger)
	r.Use(middleware.URLFormat)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/", a.LandingPage)
		r.Get("/health", a.Health)
	})

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		// Signups and stats
		r.Post("/api/waitlist", a.JoinWaitlist)
		r.Post("/api/enroll", a.SubmitEnrollment)
		r.Get("/api/stats", a.GetStats)

		// Administration, tested without auth middleware
		r.Get("/api/waitlist", a.ListWaitlist)
		r.Delete("/api/waitlist/{entryID}", a.DeleteWaitlistEntry)
		r.Get("/api/enrollments", a.ListEnrollments)
		r.Delete("/api/enrollments/{enrollmentID}", a.DeleteEnrollment)
		r.Get("/api/reports/enrollments", a.ReportEnrollments)
		r.Post("/api/import", a.ImportLegacyData)
		r.Post("/api/reset", a.ResetDatastore)

		// Dashboard
		r.Get("/dashdata/data", a.GetDashboardData)
	})

	code := m.Run()
	os.Exit(code)
}
