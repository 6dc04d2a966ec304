// Package db opens the local staging database.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Retry controls how long Open waits for the database to come up.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry gives a containerised Postgres time to start.
var DefaultRetry = Retry{Attempts: 5, Delay: 2 * time.Second}

// Open connects with the driver matching the DSN and migrates models.
func Open(dsn string, usePostgres bool, retry Retry, models ...any) (*gorm.DB, error) {
	dialector := sqlite.Open(dsn)
	if usePostgres {
		dialector = postgres.Open(dsn)
	}
	if retry.Attempts < 1 {
		retry.Attempts = 1
	}

	var (
		conn *gorm.DB
		err  error
	)
	for i := 0; i < retry.Attempts; i++ {
		conn, err = gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
		if err == nil {
			break
		}
		log.Printf("db attempt=%d/%d err=%v", i+1, retry.Attempts, err)
		if i+1 < retry.Attempts {
			time.Sleep(retry.Delay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := conn.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return conn, nil
}
