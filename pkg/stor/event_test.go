package stor

import (
	"testing"
	"time"
)

func TestCreateAndCountEvents(t *testing.T) {

	before, err := St.Event().Count(EVENT_PAGE_VIEW)
	if err != nil {
		t.Fatalf("Failed to count events: %v", err)
	}

	for i := 0; i < 3; i++ {
		err = St.Event().Create(&Event{Type: EVENT_PAGE_VIEW})
		if err != nil {
			t.Fatalf("Failed to create an event: %v", err)
		}
	}
	err = St.Event().Create(&Event{Type: EVENT_WAITLIST, SubjectID: Entries[0].UUID})
	if err != nil {
		t.Fatalf("Failed to create an event: %v", err)
	}

	after, err := St.Event().Count(EVENT_PAGE_VIEW)
	if err != nil {
		t.Fatalf("Failed to count events: %v", err)
	}
	if after != before+3 {
		t.Errorf("Expected %d page views, got %d", before+3, after)
	}

	// counting without a type filter includes every event
	total, err := St.Event().Count("")
	if err != nil {
		t.Fatalf("Failed to count events: %v", err)
	}
	if total < after+1 {
		t.Errorf("Expected at least %d events, got %d", after+1, total)
	}
}

func TestLastEventTimestamp(t *testing.T) {

	ts := time.Now().Add(time.Hour)
	err := St.Event().Create(&Event{Type: EVENT_ENROLL, Timestamp: ts})
	if err != nil {
		t.Fatalf("Failed to create an event: %v", err)
	}

	last, err := St.Event().LastTimestamp()
	if err != nil {
		t.Fatalf("Failed to get the last event timestamp: %v", err)
	}
	if last == nil {
		t.Fatal("Expected a timestamp, got nil")
	}
	if !last.After(time.Now()) {
		t.Errorf("Expected the forged future timestamp, got %v", last)
	}
}

func TestListEvents(t *testing.T) {

	events, err := St.Event().List(EVENT_PAGE_VIEW, 1, 2)
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	if len(*events) != 2 {
		t.Errorf("Expected a page of 2 events, got %d", len(*events))
	}
}

func TestGetDashboard(t *testing.T) {

	data, err := St.Dashboard().GetDashboard()
	if err != nil {
		t.Fatalf("Failed to get dashboard data: %v", err)
	}

	if data.TotalWaitlist != len(Entries) {
		t.Errorf("Expected %d waitlist entries, got %d", len(Entries), data.TotalWaitlist)
	}
	if data.TotalEnrollments != len(Enrollments) {
		t.Errorf("Expected %d enrollments, got %d", len(Enrollments), data.TotalEnrollments)
	}
	if data.SignupsLastDay != len(Enrollments) {
		t.Errorf("Expected %d signups in the last day, got %d", len(Enrollments), data.SignupsLastDay)
	}
	if len(data.ChartData) != 12 {
		t.Errorf("Expected 12 chart data points, got %d", len(data.ChartData))
	}
	currentMonth := time.Now().Format("2006-01")
	found := false
	for _, point := range data.ChartData {
		if point.Month == currentMonth {
			found = true
			if point.Enrollments != len(Enrollments) {
				t.Errorf("Expected %d enrollments this month, got %d", len(Enrollments), point.Enrollments)
			}
		}
	}
	if !found {
		t.Error("Missing chart data point for the current month")
	}
	if len(data.Tracks) == 0 {
		t.Error("Expected per-track counts")
	}
}
