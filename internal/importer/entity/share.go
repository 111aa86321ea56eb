package entity

import (
	"fmt"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/google/uuid"
)

type shareHandler struct{}

func (shareHandler) Type() models.EntityType { return models.ShareEntity }

func (shareHandler) RequiredFields() []string {
	return []string{"class", "type", "nominalValue", "currency", "totalIssued"}
}

func (shareHandler) DateFields() []string { return nil }

func (shareHandler) ApplyDefaults(rec models.Record) {
	coerceBool(rec, "votingRights")
	coerceBool(rec, "dividendRights")
	coerceBool(rec, "transferable")
	defaultTo(rec, "status", "Active")
}

func (shareHandler) Validate(models.Record) error { return nil }

func (h shareHandler) NewEntity(rec models.Record, companyID string) (models.Entity, *models.Activity, error) {
	share := &models.Share{
		ID:             uuid.New(),
		Class:          rec["class"],
		Type:           rec["type"],
		NominalValue:   atof(rec["nominalValue"]),
		Currency:       rec["currency"],
		VotingRights:   truthy(rec["votingRights"]),
		DividendRights: truthy(rec["dividendRights"]),
		Transferable:   truthy(rec["transferable"]),
		TotalIssued:    atoi(rec["totalIssued"]),
		Status:         rec["status"],
		Description:    rec["description"],
		CompanyID:      companyID,
	}

	description := fmt.Sprintf("Share class '%s' created with %d shares issued", share.Class, share.TotalIssued)
	return share, newActivity("added", h.Type(), share, description, companyID), nil
}

func (shareHandler) Describe(rec models.Record) string { return rec["class"] }

func (shareHandler) ProgressField() string { return "currentShare" }
