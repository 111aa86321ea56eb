package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type meetingHandler struct{}

func (meetingHandler) Type() models.EntityType { return models.MeetingEntity }

func (meetingHandler) RequiredFields() []string {
	return []string{"meetingType", "meetingDate", "location"}
}

func (meetingHandler) DateFields() []string { return []string{"meetingDate"} }

func (meetingHandler) ApplyDefaults(rec models.Record) {
	defaultTo(rec, "quorumRequired", "0")
	defaultTo(rec, "quorumPresent", "0")
	defaultTo(rec, "status", "Scheduled")
}

func (meetingHandler) Validate(models.Record) error { return nil }

func (h meetingHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	date, err := parseDMY(rec, "meetingDate")
	if err != nil {
		return nil, nil, err
	}

	required := atoi(rec["quorumRequired"])
	present := atoi(rec["quorumPresent"])
	meeting := &models.Meeting{
		ID:             uuid.New(),
		MeetingType:    rec["meetingType"],
		MeetingDate:    date,
		Location:       rec["location"],
		QuorumRequired: required,
		QuorumPresent:  present,
		QuorumAchieved: present >= required,
		Status:         rec["status"],
		CompanyID:      companyID,
	}

	description := fmt.Sprintf("New %s created for %s", meeting.MeetingType, rec["meetingDate"])
	return meeting, newActivity("added", h.Type(), meeting, description, companyID), nil
}

func (meetingHandler) Describe(rec models.Record) string {
	return fmt.Sprintf("%s on %s", rec["meetingType"], rec["meetingDate"])
}

func (meetingHandler) ProgressField() string { return "currentMeeting" }
