package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/siteforge/siteforge/internal/model"
)

// GormStore implements JobStore using GORM over SQLite.
type GormStore struct {
	db *gorm.DB
}

// Open opens the database at the given DSN and migrates the job table.
func Open(dsn string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}
	if err := db.AutoMigrate(&model.Job{}); err != nil {
		return nil, fmt.Errorf("migrate job store: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Create inserts a new pending job with a fresh id.
func (s *GormStore) Create(ctx context.Context, fields model.JobFields) (*model.Job, error) {
	job := &model.Job{
		ID:       uuid.New().String(),
		Status:   model.StatusPending,
		Progress: 0,
		Fields:   fields,
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// Update merges the partial update into the job row inside a
// transaction, so pollers never observe a torn write.
func (s *GormStore) Update(ctx context.Context, id string, upd JobUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.First(&job, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if upd.Status != "" {
			job.Status = upd.Status
		}
		if upd.Progress != nil {
			job.Progress = *upd.Progress
		}
		if upd.SiteURLs != nil {
			job.SiteURLs = upd.SiteURLs
		}
		if upd.PDFURL != "" {
			job.PDFURL = upd.PDFURL
		}
		if upd.CloudResources != nil {
			job.CloudResources = upd.CloudResources
		}
		if upd.Error != "" {
			job.Error = upd.Error
		}

		return tx.Save(&job).Error
	})
}

// Get retrieves a job by id.
func (s *GormStore) Get(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
