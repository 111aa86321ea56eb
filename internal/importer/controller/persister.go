package controller

import (
	"context"
	"fmt"

	"github.com/gartstein/registrar/internal/importer/entity"
	"github.com/gartstein/registrar/internal/importer/events"
	"github.com/gartstein/registrar/internal/importer/models"
	"go.uber.org/zap"
)

// persistAll writes validated records in contiguous batches. Each
// record gets a progress event, the entity row and its paired activity
// entry, in that order. A single persistence failure aborts the whole
// job: already-written records stay, nothing after the failure is
// attempted. Validation failures were skipped earlier; persistence
// failures are never skipped.
func (s *ImportService) persistAll(ctx context.Context, job models.ImportJob, handler entity.Handler, records []models.Record, logger *zap.Logger) (int, error) {
	total := len(records)
	processed := 0

	for start := 0; start < total; start += s.batchSize {
		end := min(start+s.batchSize, total)
		batch := records[start:end]
		logger.Debug("Processing batch",
			zap.Int("batch_number", start/s.batchSize+1),
			zap.Int("total_batches", (total+s.batchSize-1)/s.batchSize),
			zap.Int("batch_size", len(batch)),
			zap.Int("processed_so_far", processed),
			zap.Int("total_records", total),
		)

		for i, rec := range batch {
			s.producer.Produce(events.Event{
				Type:      events.ImportProgress,
				JobID:     job.ID,
				CompanyID: job.CompanyID,
				Progress: &models.Progress{
					PercentComplete: (processed + i + 1) * 100 / total,
					LabelField:      handler.ProgressField(),
					Label:           handler.Describe(rec),
				},
			})

			ent, activity, err := handler.NewEntity(rec, job.CompanyID)
			if err != nil {
				return processed + i, err
			}
			if err := s.repo.CreateEntity(ctx, ent); err != nil {
				return processed + i, fmt.Errorf("failed to create %s: %w", job.EntityType, err)
			}
			if err := s.repo.CreateActivity(ctx, activity); err != nil {
				return processed + i, fmt.Errorf("failed to create activity for %s: %w", job.EntityType, err)
			}
		}

		processed = end
		logger.Info("Batch processed",
			zap.Int("processed", processed),
			zap.Int("remaining", total-processed),
		)
	}

	return processed, nil
}
