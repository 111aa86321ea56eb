package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type allotmentHandler struct{}

func (allotmentHandler) Type() models.EntityType { return models.AllotmentEntity }

func (allotmentHandler) RequiredFields() []string {
	return []string{"allotmentId", "allotmentDate", "shareClass", "numberOfShares",
		"pricePerShare", "currency", "allottee", "paymentStatus", "status"}
}

func (allotmentHandler) DateFields() []string { return []string{"allotmentDate"} }

func (allotmentHandler) ApplyDefaults(models.Record) {}

func (allotmentHandler) Validate(rec models.Record) error {
	if !oneOf(rec["status"], "Active", "Cancelled") {
		return fmt.Errorf("invalid allotment status %q", rec["status"])
	}
	if !oneOf(rec["paymentStatus"], "Pending", "Paid", "Partially Paid") {
		return fmt.Errorf("invalid payment status %q", rec["paymentStatus"])
	}
	return nil
}

func (h allotmentHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	allotted, err := parseDMY(rec, "allotmentDate")
	if err != nil {
		return nil, nil, err
	}

	allotment := &models.Allotment{
		ID:             uuid.New(),
		AllotmentID:    rec["allotmentId"],
		AllotmentDate:  allotted,
		ShareClass:     rec["shareClass"],
		NumberOfShares: atoi(rec["numberOfShares"]),
		PricePerShare:  atof(rec["pricePerShare"]),
		Currency:       rec["currency"],
		Allottee:       rec["allottee"],
		PaymentStatus:  rec["paymentStatus"],
		Status:         rec["status"],
		CompanyID:      companyID,
	}

	description := fmt.Sprintf("New allotment created: %d %s shares to %s",
		allotment.NumberOfShares, allotment.ShareClass, allotment.Allottee)
	return allotment, newActivity("added", h.Type(), allotment, description, companyID), nil
}

func (allotmentHandler) Describe(rec models.Record) string {
	return fmt.Sprintf("%s %s %s shares to %s",
		rec["currency"], rec["numberOfShares"], rec["shareClass"], rec["allottee"])
}

func (allotmentHandler) ProgressField() string { return "currentAllotment" }
