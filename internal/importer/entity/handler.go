// Package entity implements one import handler per statutory register.
// A handler owns everything that varies by entity type: required
// fields, default values, domain validation, the persisted row shape
// and the human-readable labels used for progress and audit entries.
package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gartstein/registrar/internal/importer/dates"
	e "github.com/gartstein/registrar/internal/importer/errors"
	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

// Handler is the per-entity strategy consulted by validation and
// persistence. NewEntity returns the entity together with its audit
// activity so the two are always created as a pair.
type Handler interface {
	Type() models.EntityType
	RequiredFields() []string
	// DateFields lists the canonical DD/MM/YYYY fields; any non-empty
	// value must pass strict calendar validation.
	DateFields() []string
	// ApplyDefaults back-fills optional fields in place.
	ApplyDefaults(rec models.Record)
	// Validate runs domain checks on a defaulted record.
	Validate(rec models.Record) error
	NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error)
	// Describe renders the progress label for one record.
	Describe(rec models.Record) string
	// ProgressField names the JSON field the label travels under.
	ProgressField() string
}

// ForType returns the handler for an entity type.
func ForType(t models.EntityType) (Handler, error) {
	switch t {
	case models.DirectorEntity:
		return directorHandler{}, nil
	case models.ShareholderEntity:
		return shareholderHandler{}, nil
	case models.BeneficialOwnerEntity:
		return beneficialOwnerHandler{}, nil
	case models.ShareEntity:
		return shareHandler{}, nil
	case models.ChargeEntity:
		return chargeHandler{}, nil
	case models.AllotmentEntity:
		return allotmentHandler{}, nil
	case models.MeetingEntity:
		return meetingHandler{}, nil
	case models.MinuteEntity:
		return minuteHandler{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", e.ErrUnknownEntity, t)
	}
}

const (
	defaultTitle       = "Mr"
	defaultAddress     = "No address provided"
	activityUserSystem = "System"
)

func defaultTo(rec models.Record, field, value string) {
	if rec[field] == "" {
		rec[field] = value
	}
}

// coerceBool rewrites a flag cell to "true"/"false". Source files carry
// Yes/No, true/false or 1/0.
func coerceBool(rec models.Record, field string) {
	rec[field] = strconv.FormatBool(truthy(rec[field]))
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

func atoi(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func atof(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseDMY(rec models.Record, field string) (time.Time, error) {
	t, err := dates.ParseDMY(rec[field])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return t, nil
}

func optionalDMY(rec models.Record, field string) (*time.Time, error) {
	if rec[field] == "" {
		return nil, nil
	}
	t, err := parseDMY(rec, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func fullName(rec models.Record) string {
	return strings.TrimSpace(rec["firstName"] + " " + rec["lastName"])
}

func newActivity(activityType string, entityType models.EntityType, entity models.Entity, description, companyID string) *models.Activity {
	return &models.Activity{
		ID:          uuid.New(),
		Type:        activityType,
		EntityType:  entityType,
		EntityID:    entity.GetID(),
		Description: description,
		User:        activityUserSystem,
		Time:        time.Now(),
		CompanyID:   companyID,
	}
}
