// Package controller implements the core business logic for the
// import worker: running one queued job end to end and persisting the
// validated records in bounded batches.
package controller

import (
	"context"
	"os"

	"github.com/gartstein/registrar/internal/importer/entity"
	"github.com/gartstein/registrar/internal/importer/events"
	"github.com/gartstein/registrar/internal/importer/mapping"
	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/gartstein/registrar/internal/importer/validate"
	"go.uber.org/zap"
)

// DefaultBatchSize bounds how many records are processed per chunk.
const DefaultBatchSize = 1000

// EventProducer publishes progress and terminal events for a job.
type EventProducer interface {
	Produce(event events.Event)
}

// Repository defines the storage interface the import pipeline needs.
type Repository interface {
	CreateEntity(ctx context.Context, entity models.Entity) error
	CreateActivity(ctx context.Context, activity *models.Activity) error
}

// FileReader parses an uploaded file into raw rows.
type FileReader interface {
	Read(path, mimeType string) ([]models.RawRow, error)
}

// ImportService consumes import jobs and drives the pipeline:
// read file, map columns, validate records, persist in batches.
type ImportService struct {
	reader    FileReader
	repo      Repository
	producer  EventProducer
	logger    *zap.Logger
	batchSize int
}

// NewImportService constructs an ImportService. A non-positive batch
// size falls back to DefaultBatchSize.
func NewImportService(reader FileReader, repo Repository, producer EventProducer, logger *zap.Logger, batchSize int) *ImportService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ImportService{
		reader:    reader,
		repo:      repo,
		producer:  producer,
		logger:    logger.Named("import_service"),
		batchSize: batchSize,
	}
}

// ProcessJob runs one import job to a terminal state. The source file
// is removed exactly once, on whichever terminal path is reached
// first. The returned error mirrors what was reported on the failed
// event; the queue layer uses it for logging only.
func (s *ImportService) ProcessJob(ctx context.Context, job models.ImportJob) error {
	logger := s.logger.With(
		zap.String("job_id", job.ID),
		zap.String("company_id", job.CompanyID),
		zap.String("file_name", job.FileName),
	)
	logger.Info("Starting import job", zap.String("entity_type", string(job.EntityType)))

	cleaned := false
	cleanup := func() {
		if cleaned {
			return
		}
		cleaned = true
		if _, err := os.Stat(job.FilePath); err != nil {
			return
		}
		if err := os.Remove(job.FilePath); err != nil {
			logger.Error("Failed to remove import file", zap.Error(err))
		}
	}

	count, err := s.runPipeline(ctx, job, logger)
	if err != nil {
		logger.Error("Import failed", zap.Error(err))
		cleanup()
		s.producer.Produce(events.Event{
			Type:      events.ImportFailed,
			JobID:     job.ID,
			CompanyID: job.CompanyID,
			Error:     err.Error(),
		})
		return err
	}

	logger.Info("Import completed successfully", zap.Int("processed_count", count))
	cleanup()
	s.producer.Produce(events.Event{
		Type:      events.ImportCompleted,
		JobID:     job.ID,
		CompanyID: job.CompanyID,
		Result:    &models.Result{Success: true, Count: count},
	})
	return nil
}

func (s *ImportService) runPipeline(ctx context.Context, job models.ImportJob, logger *zap.Logger) (int, error) {
	handler, err := entity.ForType(job.EntityType)
	if err != nil {
		return 0, err
	}

	// The whole file is parsed up front; a stalled redelivery re-runs
	// the import from scratch, there is no resumable checkpoint.
	rows, err := s.reader.Read(job.FilePath, job.MimeType)
	if err != nil {
		return 0, err
	}
	logger.Info("File parsed successfully", zap.Int("record_count", len(rows)))

	records := mapping.New(job.Mapping).MapAll(rows)
	valid := validate.New(handler, s.logger).Filter(records)
	if dropped := len(records) - len(valid); dropped > 0 {
		logger.Warn("Records dropped by validation", zap.Int("dropped", dropped))
	}

	return s.persistAll(ctx, job, handler, valid, logger)
}
