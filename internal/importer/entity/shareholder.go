package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type shareholderHandler struct{}

func (shareholderHandler) Type() models.EntityType { return models.ShareholderEntity }

func (shareholderHandler) RequiredFields() []string {
	return []string{"firstName", "lastName", "dateOfBirth", "nationality", "email", "phone", "dateAcquired"}
}

func (shareholderHandler) DateFields() []string {
	return []string{"dateOfBirth", "dateAcquired"}
}

func (shareholderHandler) ApplyDefaults(rec models.Record) {
	defaultTo(rec, "title", defaultTitle)
	defaultTo(rec, "address", defaultAddress)
	defaultTo(rec, "ordinaryShares", "0")
	defaultTo(rec, "preferentialShares", "0")
	defaultTo(rec, "status", "Active")
}

func (shareholderHandler) Validate(models.Record) error { return nil }

func (h shareholderHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	dob, err := parseDMY(rec, "dateOfBirth")
	if err != nil {
		return nil, nil, err
	}
	acquired, err := parseDMY(rec, "dateAcquired")
	if err != nil {
		return nil, nil, err
	}

	shareholder := &models.Shareholder{
		ID:                 uuid.New(),
		Title:              rec["title"],
		FirstName:          rec["firstName"],
		LastName:           rec["lastName"],
		DateOfBirth:        dob,
		Nationality:        rec["nationality"],
		Address:            rec["address"],
		Email:              rec["email"],
		Phone:              rec["phone"],
		OrdinaryShares:     atoi(rec["ordinaryShares"]),
		PreferentialShares: atoi(rec["preferentialShares"]),
		DateAcquired:       acquired,
		Status:             rec["status"],
		CompanyID:          companyID,
	}

	description := fmt.Sprintf("%s %s added as shareholder with %d shares",
		shareholder.FirstName, shareholder.LastName, shareholder.OrdinaryShares+shareholder.PreferentialShares)
	return shareholder, newActivity("added", h.Type(), shareholder, description, companyID), nil
}

func (shareholderHandler) Describe(rec models.Record) string { return fullName(rec) }

func (shareholderHandler) ProgressField() string { return "currentShareholder" }
