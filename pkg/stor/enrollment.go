// Copyright 2025 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package stor

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Enrollment data model.
// Like WaitlistEntry, db bookkeeping stays out of the JSON form and
// deletes are permanent.
type Enrollment struct {
	ID              uint      `json:"-" gorm:"primarykey"`
	UpdatedAt       time.Time `json:"-"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
	UUID            string    `json:"id" validate:"omitempty,uuid" gorm:"type:varchar(100);uniqueIndex"`
	Name            string    `json:"name" validate:"required" gorm:"type:varchar(255)"`
	Email           string    `json:"email" validate:"required,email" gorm:"type:varchar(255);index"`
	Track           string    `json:"track" validate:"required" gorm:"type:varchar(100);index"`
	Experience      string    `json:"experience" validate:"required" gorm:"type:varchar(100)"`
	Newsletter      bool      `json:"newsletter"`
	ScholarshipInfo bool      `json:"scholarship_info"`
	Status          string    `json:"status" validate:"omitempty,oneof=pending confirmed cancelled" gorm:"type:varchar(20);index"`
}

// Validate checks required fields and values
func (e *Enrollment) Validate() error {

	validate := validator.New()
	return validate.Struct(e)
}

func (s enrollmentStore) ListAll() (*[]Enrollment, error) {
	enrollments := []Enrollment{}
	// security: limited to 1000 results, in descending order of ID to have a stable order
	return &enrollments, s.db.Limit(1000).Order("id DESC").Find(&enrollments).Error
}

func (s enrollmentStore) List(pageNum, pageSize int) (*[]Enrollment, error) {
	enrollments := []Enrollment{}
	// pageNum starts at 1
	// result sorted to assure the same order for each request
	return &enrollments, s.db.Offset((pageNum - 1) * pageSize).Limit(pageSize).Order("id DESC").Find(&enrollments).Error
}

func (s enrollmentStore) FindByTrack(track string) (*[]Enrollment, error) {
	enrollments := []Enrollment{}
	return &enrollments, s.db.Limit(1000).Find(&enrollments, "track = ?", track).Error
}

// FindByDate selects enrollments created on a specific day (YYYY-MM-DD)
// or during a specific month (YYYY-MM).
func (s enrollmentStore) FindByDate(date string) (*[]Enrollment, error) {
	enrollments := []Enrollment{}

	var start, end time.Time
	var err error
	switch len(date) {
	case len("2006-01-02"):
		start, err = time.Parse("2006-01-02", date)
		if err != nil {
			return nil, err
		}
		end = start.AddDate(0, 0, 1)
	case len("2006-01"):
		start, err = time.Parse("2006-01", date)
		if err != nil {
			return nil, err
		}
		end = start.AddDate(0, 1, 0)
	default:
		start, err = time.Parse("2006-01-02", date)
		if err != nil {
			return nil, err
		}
	}

	return &enrollments, s.db.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").Find(&enrollments).Error
}

func (s enrollmentStore) FindByEmail(email string) (*[]Enrollment, error) {
	enrollments := []Enrollment{}
	return &enrollments, s.db.Limit(1000).Find(&enrollments, "email = ?", email).Error
}

func (s enrollmentStore) Count() (int64, error) {
	var count int64
	return count, s.db.Model(Enrollment{}).Count(&count).Error
}

func (s enrollmentStore) Get(uuid string) (*Enrollment, error) {
	var enrollment Enrollment
	return &enrollment, s.db.Where("uuid = ?", uuid).First(&enrollment).Error
}

func (s enrollmentStore) Create(newEnrollment *Enrollment) error {
	return s.db.Create(newEnrollment).Error
}

func (s enrollmentStore) Update(changedEnrollment *Enrollment) error {
	return s.db.Save(changedEnrollment).Error
}

func (s enrollmentStore) Delete(deletedEnrollment *Enrollment) error {
	return s.db.Delete(deletedEnrollment).Error
}
