// Copyright 2025 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package stor

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// WaitlistEntry data model.
// The db primary key and update timestamp are kept out of the JSON form;
// the public identifier is the UUID. Deletes are permanent, so that an email
// address freed by an admin can join the waitlist again.
type WaitlistEntry struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	UpdatedAt time.Time `json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"index"` // index on created_at, useful for dashboard queries
	UUID      string    `json:"id" validate:"omitempty,uuid" gorm:"type:varchar(100);uniqueIndex"`
	Email     string    `json:"email" validate:"required,email" gorm:"type:varchar(255);uniqueIndex"`
	Name      string    `json:"name,omitempty" gorm:"type:varchar(255)"`
	Status    string    `json:"status" validate:"omitempty,oneof=pending confirmed cancelled" gorm:"type:varchar(20);index"`
}

// Validate checks required fields and values
func (e *WaitlistEntry) Validate() error {

	validate := validator.New()
	return validate.Struct(e)
}

func (s waitlistStore) ListAll() (*[]WaitlistEntry, error) {
	entries := []WaitlistEntry{}
	// security: limited to 1000 results, in descending order of ID to have a stable order
	return &entries, s.db.Limit(1000).Order("id DESC").Find(&entries).Error
}

func (s waitlistStore) List(pageNum, pageSize int) (*[]WaitlistEntry, error) {
	entries := []WaitlistEntry{}
	// pageNum starts at 1
	// result sorted to assure the same order for each request
	return &entries, s.db.Offset((pageNum - 1) * pageSize).Limit(pageSize).Order("id DESC").Find(&entries).Error
}

func (s waitlistStore) FindByStatus(status string) (*[]WaitlistEntry, error) {
	entries := []WaitlistEntry{}
	return &entries, s.db.Limit(1000).Find(&entries, "status = ?", status).Error
}

func (s waitlistStore) Count() (int64, error) {
	var count int64
	return count, s.db.Model(WaitlistEntry{}).Count(&count).Error
}

func (s waitlistStore) Get(uuid string) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	return &entry, s.db.Where("uuid = ?", uuid).First(&entry).Error
}

func (s waitlistStore) GetByEmail(email string) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	return &entry, s.db.Where("email = ?", email).First(&entry).Error
}

func (s waitlistStore) Create(newEntry *WaitlistEntry) error {
	return s.db.Create(newEntry).Error
}

func (s waitlistStore) Update(changedEntry *WaitlistEntry) error {
	return s.db.Save(changedEntry).Error
}

func (s waitlistStore) Delete(deletedEntry *WaitlistEntry) error {
	return s.db.Delete(deletedEntry).Error
}
