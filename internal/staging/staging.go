// Package staging keeps the attachment files a user has picked for an ordre
// de mission until they are submitted in one upload. Removing a staged file
// never reaches the backend.
package staging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a staged file does not belong to the batch.
var ErrNotFound = errors.New("staged file not found")

// ErrEmptyFile rejects zero-byte uploads.
var ErrEmptyFile = errors.New("empty file")

// PendingFile is one staged attachment. A batch is identified by the owner
// (session user) and the ordre it will be attached to.
type PendingFile struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"index:idx_batch;not null"`
	OrdreID     uint   `gorm:"index:idx_batch;not null"`
	Name        string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:128"`
	Size        int64
	Data        []byte
	CreatedAt   time.Time
}

// HumanSize renders the file size, e.g. "1.2 MB".
func (f PendingFile) HumanSize() string { return humanize.Bytes(uint64(f.Size)) }

// Batch key.
type Batch struct {
	OwnerID uint
	OrdreID uint
}

// Store persists staged files with gorm.
type Store struct {
	db *gorm.DB
}

// Models lists the tables the store needs migrated.
func Models() []any { return []any{&PendingFile{}} }

// NewStore wraps an opened, migrated database.
func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// Add stages one file.
func (s *Store) Add(ctx context.Context, b Batch, name, contentType string, data []byte) (PendingFile, error) {
	if len(data) == 0 {
		return PendingFile{}, ErrEmptyFile
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "justificatif"
	}
	f := PendingFile{
		OwnerID:     b.OwnerID,
		OrdreID:     b.OrdreID,
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
	if err := s.db.WithContext(ctx).Create(&f).Error; err != nil {
		return PendingFile{}, fmt.Errorf("stage %s: %w", name, err)
	}
	return f, nil
}

// List returns the batch in insertion order, without file contents.
func (s *Store) List(ctx context.Context, b Batch) ([]PendingFile, error) {
	var files []PendingFile
	err := s.batch(ctx, b).
		Select("id", "owner_id", "ordre_id", "name", "content_type", "size", "created_at").
		Order("id").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("list staged files: %w", err)
	}
	return files, nil
}

// Load returns the batch with file contents, ready for upload.
func (s *Store) Load(ctx context.Context, b Batch) ([]PendingFile, error) {
	var files []PendingFile
	if err := s.batch(ctx, b).Order("id").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("load staged files: %w", err)
	}
	return files, nil
}

// Remove drops one file from the batch.
func (s *Store) Remove(ctx context.Context, b Batch, id uint) error {
	res := s.batch(ctx, b).Where("id = ?", id).Delete(&PendingFile{})
	if res.Error != nil {
		return fmt.Errorf("remove staged file %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear empties the batch, typically after a successful upload.
func (s *Store) Clear(ctx context.Context, b Batch) error {
	if err := s.batch(ctx, b).Delete(&PendingFile{}).Error; err != nil {
		return fmt.Errorf("clear staged files: %w", err)
	}
	return nil
}

// TotalSize sums the sizes of files and renders them for display.
func TotalSize(files []PendingFile) string {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return humanize.Bytes(uint64(total))
}

func (s *Store) batch(ctx context.Context, b Batch) *gorm.DB {
	return s.db.WithContext(ctx).Model(&PendingFile{}).Where("owner_id = ? AND ordre_id = ?", b.OwnerID, b.OrdreID)
}
