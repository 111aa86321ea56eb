package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type minuteHandler struct{}

func (minuteHandler) Type() models.EntityType { return models.MinuteEntity }

func (minuteHandler) RequiredFields() []string {
	return []string{"meetingDate", "chairperson"}
}

func (minuteHandler) DateFields() []string { return []string{"meetingDate"} }

func (minuteHandler) ApplyDefaults(rec models.Record) {
	defaultTo(rec, "status", "Draft")
}

func (minuteHandler) Validate(models.Record) error { return nil }

func (h minuteHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	date, err := parseDMY(rec, "meetingDate")
	if err != nil {
		return nil, nil, err
	}

	minute := &models.BoardMinute{
		ID:          uuid.New(),
		MeetingDate: date,
		Chairperson: rec["chairperson"],
		Location:    rec["location"],
		Status:      rec["status"],
		CompanyID:   companyID,
	}

	description := fmt.Sprintf("New board minute created for %s", rec["meetingDate"])
	return minute, newActivity("added", h.Type(), minute, description, companyID), nil
}

func (minuteHandler) Describe(rec models.Record) string {
	return fmt.Sprintf("Board minute of %s", rec["meetingDate"])
}

func (minuteHandler) ProgressField() string { return "currentMinute" }
