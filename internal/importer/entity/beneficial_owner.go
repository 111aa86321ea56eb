package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type beneficialOwnerHandler struct{}

func (beneficialOwnerHandler) Type() models.EntityType { return models.BeneficialOwnerEntity }

func (beneficialOwnerHandler) RequiredFields() []string {
	return []string{"firstName", "lastName", "dateOfBirth", "nationality", "registrationDate", "ownershipPercentage", "natureOfControl"}
}

func (beneficialOwnerHandler) DateFields() []string {
	return []string{"dateOfBirth", "registrationDate"}
}

func (beneficialOwnerHandler) ApplyDefaults(rec models.Record) {
	defaultTo(rec, "title", defaultTitle)
	defaultTo(rec, "address", defaultAddress)
	defaultTo(rec, "status", "Active")
}

func (beneficialOwnerHandler) Validate(models.Record) error { return nil }

func (h beneficialOwnerHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	dob, err := parseDMY(rec, "dateOfBirth")
	if err != nil {
		return nil, nil, err
	}
	registered, err := parseDMY(rec, "registrationDate")
	if err != nil {
		return nil, nil, err
	}

	owner := &models.BeneficialOwner{
		ID:                  uuid.New(),
		Title:               rec["title"],
		FirstName:           rec["firstName"],
		LastName:            rec["lastName"],
		DateOfBirth:         dob,
		Nationality:         rec["nationality"],
		Address:             rec["address"],
		Email:               rec["email"],
		Phone:               rec["phone"],
		RegistrationDate:    registered,
		OwnershipPercentage: atof(rec["ownershipPercentage"]),
		NatureOfControl:     rec["natureOfControl"],
		Status:              rec["status"],
		CompanyID:           companyID,
	}

	description := fmt.Sprintf("%s %s added as beneficial owner with %g%% ownership",
		owner.FirstName, owner.LastName, owner.OwnershipPercentage)
	return owner, newActivity("added", h.Type(), owner, description, companyID), nil
}

func (beneficialOwnerHandler) Describe(rec models.Record) string { return fullName(rec) }

func (beneficialOwnerHandler) ProgressField() string { return "currentOwner" }
