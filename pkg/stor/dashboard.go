// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package stor

import (
	"time"
)

// DashboardData data model
type TrackCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ChartDataPoint struct {
	Month       string `json:"month"`
	Enrollments int    `json:"enrollments"`
	Waitlist    int    `json:"waitlist"`
}

type DashboardData struct {
	TotalWaitlist           int              `json:"totalWaitlist"`
	TotalEnrollments        int              `json:"totalEnrollments"`
	TotalPageViews          int              `json:"totalPageViews"`
	SignupsLast12Months     int              `json:"signupsLast12Months"`
	SignupsLastMonth        int              `json:"signupsLastMonth"`
	SignupsLastWeek         int              `json:"signupsLastWeek"`
	SignupsLastDay          int              `json:"signupsLastDay"`
	OldestSignupDate        string           `json:"oldestSignupDate"`
	LatestSignupDate        string           `json:"latestSignupDate"`
	NewsletterOptIns        int              `json:"newsletterOptIns"`
	ScholarshipInfoRequests int              `json:"scholarshipInfoRequests"`
	Tracks                  []TrackCount     `json:"tracks"`
	ChartData               []ChartDataPoint `json:"chartData"`
}

// GetDashboard provides a summary of key metrics and statistics about the platform.
func (s dashboardStore) GetDashboard() (*DashboardData, error) {
	var data DashboardData

	// Temporary variables for counts (GORM uses int64)
	var totalWaitlist, totalEnrollments, totalPageViews int64

	// Count waitlist entries
	if err := s.db.Model(&WaitlistEntry{}).Count(&totalWaitlist).Error; err != nil {
		return nil, err
	}
	data.TotalWaitlist = int(totalWaitlist)

	// Count enrollments
	if err := s.db.Model(&Enrollment{}).Count(&totalEnrollments).Error; err != nil {
		return nil, err
	}
	data.TotalEnrollments = int(totalEnrollments)

	// Count page views
	if err := s.db.Model(&Event{}).Where("type = ?", EVENT_PAGE_VIEW).Count(&totalPageViews).Error; err != nil {
		return nil, err
	}
	data.TotalPageViews = int(totalPageViews)

	// Dates for period calculations
	now := time.Now()
	last12Months := now.AddDate(-1, 0, 0)
	lastMonth := now.AddDate(0, -1, 0)
	lastWeek := now.AddDate(0, 0, -7)
	lastDay := now.AddDate(0, 0, -1)

	// Signups are enrollments; period counts are computed on created_at
	var signupsLast12Months, signupsLastMonth, signupsLastWeek, signupsLastDay int64

	if err := s.db.Model(&Enrollment{}).Where("created_at >= ?", last12Months).Count(&signupsLast12Months).Error; err != nil {
		return nil, err
	}
	data.SignupsLast12Months = int(signupsLast12Months)

	if err := s.db.Model(&Enrollment{}).Where("created_at >= ?", lastMonth).Count(&signupsLastMonth).Error; err != nil {
		return nil, err
	}
	data.SignupsLastMonth = int(signupsLastMonth)

	if err := s.db.Model(&Enrollment{}).Where("created_at >= ?", lastWeek).Count(&signupsLastWeek).Error; err != nil {
		return nil, err
	}
	data.SignupsLastWeek = int(signupsLastWeek)

	if err := s.db.Model(&Enrollment{}).Where("created_at >= ?", lastDay).Count(&signupsLastDay).Error; err != nil {
		return nil, err
	}
	data.SignupsLastDay = int(signupsLastDay)

	// Oldest and latest signup dates
	var oldest, latest Enrollment
	if err := s.db.Order("created_at ASC").First(&oldest).Error; err == nil {
		data.OldestSignupDate = oldest.CreatedAt.Format("2006-01-02")
	}
	if err := s.db.Order("created_at DESC").First(&latest).Error; err == nil {
		data.LatestSignupDate = latest.CreatedAt.Format("2006-01-02")
	}

	// Opt-in counts
	var newsletterOptIns, scholarshipInfoRequests int64
	if err := s.db.Model(&Enrollment{}).Where("newsletter = ?", true).Count(&newsletterOptIns).Error; err != nil {
		return nil, err
	}
	data.NewsletterOptIns = int(newsletterOptIns)

	if err := s.db.Model(&Enrollment{}).Where("scholarship_info = ?", true).Count(&scholarshipInfoRequests).Error; err != nil {
		return nil, err
	}
	data.ScholarshipInfoRequests = int(scholarshipInfoRequests)

	// Enrollments per track
	type trackRow struct {
		Track string
		Total int
	}
	var trackRows []trackRow
	if err := s.db.Model(&Enrollment{}).
		Select("track, count(*) as total").
		Group("track").
		Order("total DESC").
		Scan(&trackRows).Error; err != nil {
		return nil, err
	}
	for _, row := range trackRows {
		data.Tracks = append(data.Tracks, TrackCount{Name: row.Track, Count: row.Total})
	}

	// Monthly chart data for the last 12 months
	chart, err := s.monthlyChartData(now)
	if err != nil {
		return nil, err
	}
	data.ChartData = chart

	return &data, nil
}

// monthlyChartData counts signups per month over the last 12 months.
// The per-month counts are computed in Go rather than SQL, to stay
// portable across the supported dialects.
func (s dashboardStore) monthlyChartData(now time.Time) ([]ChartDataPoint, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	var enrollments []Enrollment
	if err := s.db.Where("created_at >= ?", start).Find(&enrollments).Error; err != nil {
		return nil, err
	}
	var entries []WaitlistEntry
	if err := s.db.Where("created_at >= ?", start).Find(&entries).Error; err != nil {
		return nil, err
	}

	enrollPerMonth := make(map[string]int)
	waitlistPerMonth := make(map[string]int)
	for _, e := range enrollments {
		enrollPerMonth[e.CreatedAt.Format("2006-01")]++
	}
	for _, e := range entries {
		waitlistPerMonth[e.CreatedAt.Format("2006-01")]++
	}

	var chart []ChartDataPoint
	for i := 0; i < 12; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		chart = append(chart, ChartDataPoint{
			Month:       month,
			Enrollments: enrollPerMonth[month],
			Waitlist:    waitlistPerMonth[month],
		})
	}
	return chart, nil
}
