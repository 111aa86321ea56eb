// Package db provides the GORM-backed repository shared by all import
// workers. Persistence is unconditional create: re-importing the same
// file will duplicate rows, deduplication is the uploader's concern.
package db

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/registrar/internal/importer/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewRepository connects to Postgres, retrying with exponential
// backoff so the worker survives a database that is still coming up,
// and migrates every statutory table.
func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var db *gorm.DB
	err := backoff.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		return openErr
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Director{},
		&models.Shareholder{},
		&models.BeneficialOwner{},
		&models.Share{},
		&models.Charge{},
		&models.Allotment{},
		&models.Meeting{},
		&models.BoardMinute{},
		&models.Activity{},
	)
}

// CreateEntity inserts one statutory record.
func (r *Repository) CreateEntity(ctx context.Context, entity models.Entity) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// CreateActivity appends one audit entry.
func (r *Repository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
