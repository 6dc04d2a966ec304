package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type note struct {
	ID   uint `gorm:"primaryKey"`
	Body string
}

func TestOpenSQLiteMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "staging.db")
	conn, err := Open(dsn, false, Retry{}, &note{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !conn.Migrator().HasTable(&note{}) {
		t.Fatal("model table not migrated")
	}
	if err := conn.Create(&note{Body: "hello"}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	var got note
	if err := conn.First(&got).Error; err != nil || got.Body != "hello" {
		t.Fatalf("read back: %+v %v", got, err)
	}
}

func TestOpenGivesUpAfterRetries(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "dir", "staging.db")
	start := time.Now()
	_, err := Open(dsn, false, Retry{Attempts: 3, Delay: 10 * time.Millisecond}, &note{})
	if err == nil {
		t.Fatal("expected an error for an unreachable database")
	}
	if !strings.Contains(err.Error(), "connect database") {
		t.Fatalf("err = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected two waits between three attempts, took %s", elapsed)
	}
}
