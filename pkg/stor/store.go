// Copyright 2025 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

// The stor package manages the storage of our entities.
package stor

import (
	"fmt"
	"os"
	"strings"
	"time"

	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type (

	// generic store
	dbStore struct {
		db *gorm.DB
	}

	// entity stores
	waitlistStore   dbStore
	enrollmentStore dbStore
	eventStore      dbStore
	dashboardStore  dbStore

	// Store interface, giving access to specialized interfaces
	Store interface {
		Waitlist() WaitlistRepository
		Enrollment() EnrollmentRepository
		Event() EventRepository
		Dashboard() DashboardRepository
		Ping() error
		Reset() error
	}

	// WaitlistRepository interface, defining waitlist operations
	WaitlistRepository interface {
		ListAll() (*[]WaitlistEntry, error)
		List(pageNum, pageSize int) (*[]WaitlistEntry, error)
		FindByStatus(status string) (*[]WaitlistEntry, error)
		Count() (int64, error)
		Get(uuid string) (*WaitlistEntry, error)
		GetByEmail(email string) (*WaitlistEntry, error)
		Create(e *WaitlistEntry) error
		Update(e *WaitlistEntry) error
		Delete(e *WaitlistEntry) error
	}

	// EnrollmentRepository interface, defining enrollment operations
	EnrollmentRepository interface {
		ListAll() (*[]Enrollment, error)
		List(pageNum, pageSize int) (*[]Enrollment, error)
		FindByTrack(track string) (*[]Enrollment, error)
		FindByDate(date string) (*[]Enrollment, error)
		FindByEmail(email string) (*[]Enrollment, error)
		Count() (int64, error)
		Get(uuid string) (*Enrollment, error)
		Create(e *Enrollment) error
		Update(e *Enrollment) error
		Delete(e *Enrollment) error
	}

	// EventRepository interface, defining analytics event operations
	EventRepository interface {
		List(eventType string, pageNum, pageSize int) (*[]Event, error)
		Count(eventType string) (int64, error)
		LastTimestamp() (*time.Time, error)
		Create(e *Event) error
	}

	// DashboardRepository interface, defining dashboard operations
	DashboardRepository interface {
		GetDashboard() (*DashboardData, error)
	}
)

// implementation of the different repository interfaces
func (s *dbStore) Waitlist() WaitlistRepository {
	return (*waitlistStore)(s)
}

func (s *dbStore) Enrollment() EnrollmentRepository {
	return (*enrollmentStore)(s)
}

func (s *dbStore) Event() EventRepository {
	return (*eventStore)(s)
}

// Dashboard implements Store.
func (s *dbStore) Dashboard() DashboardRepository {
	return (*dashboardStore)(s)
}

// Ping checks that the underlying database is reachable.
func (s *dbStore) Ping() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Ping()
}

// Reset wipes all rows and recreates the schema.
func (s *dbStore) Reset() error {
	err := s.db.Migrator().DropTable(&WaitlistEntry{}, &Enrollment{}, &Event{})
	if err != nil {
		return err
	}
	return s.db.AutoMigrate(&WaitlistEntry{}, &Enrollment{}, &Event{})
}

// List of status and event type values as strings
const (
	STATUS_PENDING   = "pending"
	STATUS_CONFIRMED = "confirmed"
	STATUS_CANCELLED = "cancelled"
	EVENT_PAGE_VIEW  = "page_view"
	EVENT_WAITLIST   = "waitlist_join"
	EVENT_ENROLL     = "enroll_submit"
)

// Init initializes the database
func Init(dsn string) (Store, error) {
	var err error

	dialect, cnx := dbFromURI(dsn)
	if dialect == "error" {
		return nil, fmt.Errorf("incorrect database source name: %q", dsn)
	}

	// add parameters specific to the dialect
	cnx = addParamsDialectSpecific(cnx, dialect)

	// database logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level (Silent, Error, Warn, Info)
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,        // Enable color
		},
	)

	db, err := gorm.Open(GormDialector(cnx), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Printf("Failed connecting to the database: %v", err)
		return nil, err
	}

	err = performDialectSpecific(db, dialect)
	if err != nil {
		log.Printf("Failed performing dialect specific database init: %v", err)
		return nil, err
	}

	err = db.AutoMigrate(&WaitlistEntry{}, &Enrollment{}, &Event{})
	if err != nil {
		log.Printf("Failed performing database automigrate: %v", err)
		return nil, err
	}

	stor := &dbStore{db: db}

	return stor, nil
}

// dbFromURI
func dbFromURI(uri string) (string, string) {
	parts := strings.Split(uri, "://")
	if len(parts) != 2 {
		return "error", ""
	}
	return parts[0], parts[1]
}

// addParamsDialectSpecific takes a connection string and adds parameters specific to the SQL dialect.
// A connection string which already carries parameters is left untouched.
func addParamsDialectSpecific(cnx, dialect string) string {
	if strings.Contains(cnx, "?") {
		return cnx
	}
	switch dialect {
	case "sqlite3":
		cnx += "?cache=shared&mode=rwc"
	case "mysql":
		cnx += "?charset=utf8mb4&parseTime=True&loc=Local"
	case "postgres":
		cnx += "?sslmode=disable"
	default:
		log.Printf("Invalid dialect: %s", dialect)
	}
	return cnx
}

// performDialectSpecific
func performDialectSpecific(db *gorm.DB, dialect string) error {
	switch dialect {
	case "sqlite3":
		err := db.Exec("PRAGMA journal_mode = WAL").Error
		if err != nil {
			return err
		}
		err = db.Exec("PRAGMA foreign_keys = ON").Error
		if err != nil {
			return err
		}
	case "mysql":
		// nothing , so far
	case "postgres":
		// nothing , so far
	default:
		return fmt.Errorf("invalid dialect: %s", dialect)
	}
	return nil
}
