package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

const legacyDoc = `{
	"waitlist": [
		{"id": "7b0f3b2e-9a75-4a38-bb10-5d7c8e7e1a01", "email": "trinity@example.org", "name": "Trinity", "type": "waitlist", "created_at": "2025-11-03T10:15:30.123456", "status": "pending"},
		{"id": "7b0f3b2e-9a75-4a38-bb10-5d7c8e7e1a02", "email": "morpheus@example.org", "created_at": "2025-11-04T08:00:00", "status": "pending"}
	],
	"enrollments": [
		{"id": "7b0f3b2e-9a75-4a38-bb10-5d7c8e7e1a03", "name": "Neo", "email": "neo@example.org", "track": "ai-fundamentals", "experience": "beginner", "newsletter": true, "scholarship_info": false, "created_at": "2025-11-05T09:30:00", "status": "pending"}
	],
	"analytics": {"page_views": 42, "waitlist_count": 2, "enrollment_count": 1}
}`

func TestImportLegacyData(t *testing.T) {

	req, _ := http.NewRequest("POST", "/api/import", strings.NewReader(legacyDoc))
	req.Header.Set("Content-Type", "application/json")
	response := executeRequest(req)

	if checkResponseCode(t, http.StatusOK, response) {
		var report ImportReport
		if err := json.Unmarshal(response.Body.Bytes(), &report); err != nil {
			t.Fatal(err)
		}
		if report.WaitlistImported != 2 {
			t.Errorf("Expected 2 imported waitlist rows, got %d", report.WaitlistImported)
		}
		if report.EnrollmentsImported != 1 {
			t.Errorf("Expected 1 imported enrollment, got %d", report.EnrollmentsImported)
		}
	}

	// importing the same document twice only skips rows
	req, _ = http.NewRequest("POST", "/api/import", strings.NewReader(legacyDoc))
	req.Header.Set("Content-Type", "application/json")
	response = executeRequest(req)

	if checkResponseCode(t, http.StatusOK, response) {
		var report ImportReport
		if err := json.Unmarshal(response.Body.Bytes(), &report); err != nil {
			t.Fatal(err)
		}
		if report.WaitlistImported != 0 || report.EnrollmentsImported != 0 {
			t.Errorf("Expected no imported rows on re-import, got %+v", report)
		}
		if report.WaitlistSkipped != 2 || report.EnrollmentsSkipped != 1 {
			t.Errorf("Expected all rows skipped on re-import, got %+v", report)
		}
	}

	// cleanup
	deleteWaitlistEntry(t, "7b0f3b2e-9a75-4a38-bb10-5d7c8e7e1a01")
	deleteWaitlistEntry(t, "7b0f3b2e-9a75-4a38-bb10-5d7c8e7e1a02")
	deleteEnrollment(t, "7b0f3b2e-9a75-4a38-bb10-5d7c8e7e1a03")
}

func TestImportInvalidLegacyData(t *testing.T) {

	// waitlist must be an array
	invalid := `{"waitlist": {}, "enrollments": []}`

	req, _ := http.NewRequest("POST", "/api/import", strings.NewReader(invalid))
	req.Header.Set("Content-Type", "application/json")
	response := executeRequest(req)

	checkResponseCode(t, http.StatusBadRequest, response)
}

func TestResetDatastore(t *testing.T) {

	req, _ := http.NewRequest("POST", "/api/reset", nil)
	response := executeRequest(req)

	if checkResponseCode(t, http.StatusOK, response) {
		stats := getStats(t)
		if stats.WaitlistCount != 0 || stats.EnrollmentCount != 0 || stats.PageViews != 0 {
			t.Errorf("Expected empty counters after reset, got %+v", stats)
		}
	}
}
