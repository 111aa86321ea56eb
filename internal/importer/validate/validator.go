// Package validate filters mapped records before persistence. A record
// that fails any step is logged and dropped; validation never aborts
// the surrounding import.
package validate

import (
	"github.com/gartstein/registrar/internal/importer/dates"
	"github.com/gartstein/registrar/internal/importer/entity"
	"github.com/gartstein/registrar/internal/importer/models"
	"go.uber.org/zap"
)

// Validator applies one entity handler's rules to records.
type Validator struct {
	handler entity.Handler
	logger  *zap.Logger
}

// New constructs a Validator for one entity type's handler.
func New(handler entity.Handler, logger *zap.Logger) *Validator {
	return &Validator{
		handler: handler,
		logger:  logger.Named("record_validator"),
	}
}

// Validate runs the full pipeline on one record, mutating it in place
// to apply defaults. It reports whether the record may be persisted.
func (v *Validator) Validate(rec models.Record) bool {
	if rec.Empty() {
		v.logger.Warn("Empty record skipped",
			zap.String("entity_type", string(v.handler.Type())),
		)
		return false
	}

	v.handler.ApplyDefaults(rec)

	for _, field := range v.handler.RequiredFields() {
		if rec[field] == "" {
			v.logger.Warn("Missing required field",
				zap.String("entity_type", string(v.handler.Type())),
				zap.String("field", field),
			)
			return false
		}
	}

	for _, field := range v.handler.DateFields() {
		value := rec[field]
		if value == "" {
			continue
		}
		if !dates.IsValidDMY(value) {
			v.logger.Warn("Invalid date",
				zap.String("entity_type", string(v.handler.Type())),
				zap.String("field", field),
				zap.String("value", value),
			)
			return false
		}
		parsed, _ := dates.ParseDMY(value)
		if !dates.InStatutoryRange(parsed) {
			v.logger.Warn("Date outside statutory range",
				zap.String("entity_type", string(v.handler.Type())),
				zap.String("field", field),
				zap.String("value", value),
			)
			return false
		}
	}

	if err := v.handler.Validate(rec); err != nil {
		v.logger.Warn("Record failed domain validation",
			zap.String("entity_type", string(v.handler.Type())),
			zap.Error(err),
		)
		return false
	}
	return true
}

// Filter returns the records that pass validation, preserving order.
func (v *Validator) Filter(records []models.Record) []models.Record {
	valid := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if v.Validate(rec) {
			valid = append(valid, rec)
		}
	}
	return valid
}
