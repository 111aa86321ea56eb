package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/dates"
	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type directorHandler struct{}

func (directorHandler) Type() models.EntityType { return models.DirectorEntity }

func (directorHandler) RequiredFields() []string {
	return []string{"firstName", "lastName", "dateOfBirth", "nationality", "appointmentDate", "occupation"}
}

func (directorHandler) DateFields() []string {
	return []string{"dateOfBirth", "appointmentDate", "resignationDate"}
}

func (directorHandler) ApplyDefaults(rec models.Record) {
	defaultTo(rec, "title", defaultTitle)
	defaultTo(rec, "address", defaultAddress)
	defaultTo(rec, "directorType", "Director")
	defaultTo(rec, "otherDirectorships", "None")
	defaultTo(rec, "shareholding", "0")
	defaultTo(rec, "status", "Active")
}

func (directorHandler) Validate(rec models.Record) error {
	if !oneOf(rec["status"], "Active", "Resigned") {
		return fmt.Errorf("invalid director status %q", rec["status"])
	}

	dob, err := dates.ParseDMY(rec["dateOfBirth"])
	if err != nil {
		return err
	}
	appointment, err := dates.ParseDMY(rec["appointmentDate"])
	if err != nil {
		return err
	}
	// A director must be at least 18 at appointment.
	if !dates.ValidAppointment(appointment, dob) {
		return fmt.Errorf("appointment date %s before 18th birthday", rec["appointmentDate"])
	}
	if rec["resignationDate"] != "" {
		resignation, err := dates.ParseDMY(rec["resignationDate"])
		if err != nil {
			return err
		}
		if !dates.ValidResignation(resignation, appointment) {
			return fmt.Errorf("resignation date %s not after appointment", rec["resignationDate"])
		}
	}
	return nil
}

func (h directorHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	dob, err := parseDMY(rec, "dateOfBirth")
	if err != nil {
		return nil, nil, err
	}
	appointment, err := parseDMY(rec, "appointmentDate")
	if err != nil {
		return nil, nil, err
	}
	resignation, err := optionalDMY(rec, "resignationDate")
	if err != nil {
		return nil, nil, err
	}

	director := &models.Director{
		ID:                 uuid.New(),
		Title:              rec["title"],
		FirstName:          rec["firstName"],
		LastName:           rec["lastName"],
		DateOfBirth:        dob,
		Nationality:        rec["nationality"],
		Address:            rec["address"],
		AppointmentDate:    appointment,
		ResignationDate:    resignation,
		DirectorType:       rec["directorType"],
		Occupation:         rec["occupation"],
		OtherDirectorships: rec["otherDirectorships"],
		Shareholding:       rec["shareholding"],
		Status:             rec["status"],
		CompanyID:          companyID,
	}

	description := fmt.Sprintf("%s %s appointed as %s", director.FirstName, director.LastName, director.DirectorType)
	return director, newActivity("appointment", h.Type(), director, description, companyID), nil
}

func (directorHandler) Describe(rec models.Record) string { return fullName(rec) }

func (directorHandler) ProgressField() string { return "currentDirector" }
