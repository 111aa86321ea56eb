package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type chargeHandler struct{}

func (chargeHandler) Type() models.EntityType { return models.ChargeEntity }

func (chargeHandler) RequiredFields() []string {
	return []string{"chargeId", "chargeType", "amount", "currency", "chargor", "chargee",
		"propertyCharged", "dateCreated", "registrationDate", "description"}
}

func (chargeHandler) DateFields() []string {
	return []string{"dateCreated", "registrationDate"}
}

func (chargeHandler) ApplyDefaults(rec models.Record) {
	defaultTo(rec, "status", "Active")
}

func (chargeHandler) Validate(models.Record) error { return nil }

func (h chargeHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	created, err := parseDMY(rec, "dateCreated")
	if err != nil {
		return nil, nil, err
	}
	registered, err := parseDMY(rec, "registrationDate")
	if err != nil {
		return nil, nil, err
	}

	charge := &models.Charge{
		ID:               uuid.New(),
		ChargeID:         rec["chargeId"],
		ChargeType:       rec["chargeType"],
		Amount:           atof(rec["amount"]),
		Currency:         rec["currency"],
		Chargor:          rec["chargor"],
		Chargee:          rec["chargee"],
		PropertyCharged:  rec["propertyCharged"],
		DateCreated:      created,
		RegistrationDate: registered,
		Description:      rec["description"],
		Status:           rec["status"],
		CompanyID:        companyID,
	}

	description := fmt.Sprintf("New charge created: %s - %s", charge.ChargeType, charge.ChargeID)
	return charge, newActivity("added", h.Type(), charge, description, companyID), nil
}

func (chargeHandler) Describe(rec models.Record) string { return rec["chargeId"] }

func (chargeHandler) ProgressField() string { return "currentCharge" }
