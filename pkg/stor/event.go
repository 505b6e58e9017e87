// Copyright 2025 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package stor

import (
	"time"

	"gorm.io/gorm"
)

// Event is an append-only analytics event:
// a page view, a waitlist signup or an enrollment submission.
type Event struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	Type      string    `json:"type" gorm:"type:varchar(20);index"`
	SubjectID string    `json:"subject_id,omitempty" gorm:"type:varchar(100);index"` // uuid of the related entry, if any
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

func (s eventStore) List(eventType string, pageNum, pageSize int) (*[]Event, error) {
	events := []Event{}
	tx := s.db.Offset((pageNum - 1) * pageSize).Limit(pageSize).Order("id DESC")
	if eventType != "" {
		tx = tx.Where("type = ?", eventType)
	}
	return &events, tx.Find(&events).Error
}

func (s eventStore) Count(eventType string) (int64, error) {
	var count int64
	tx := s.db.Model(Event{})
	if eventType != "" {
		tx = tx.Where("type = ?", eventType)
	}
	return count, tx.Count(&count).Error
}

// LastTimestamp returns the timestamp of the most recent event, or nil
// when no event was recorded yet.
func (s eventStore) LastTimestamp() (*time.Time, error) {
	var event Event
	err := s.db.Order("timestamp DESC").First(&event).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event.Timestamp, nil
}

func (s eventStore) Create(newEvent *Event) error {
	if newEvent.Timestamp.IsZero() {
		newEvent.Timestamp = time.Now()
	}
	return s.db.Create(newEvent).Error
}
