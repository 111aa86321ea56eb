// Package models defines the domain models for the statutory import
// worker: the import job payload, the intermediate row/record shapes
// produced by the pipeline, and the persisted entity tables.
package models

import "encoding/json"

// EntityType identifies which statutory register an import job targets.
type EntityType string

const (
	DirectorEntity        EntityType = "director"
	ShareholderEntity     EntityType = "shareholder"
	BeneficialOwnerEntity EntityType = "beneficial-owner"
	ShareEntity           EntityType = "share"
	ChargeEntity          EntityType = "charge"
	AllotmentEntity       EntityType = "allotment"
	MeetingEntity         EntityType = "meeting"
	MinuteEntity          EntityType = "minute"
)

// ImportJob is the payload enqueued by the upload layer and consumed by
// the worker. Mapping translates canonical field keys to the column
// names used in the uploaded file.
type ImportJob struct {
	ID         string            `json:"id"`
	FilePath   string            `json:"filePath"`
	FileName   string            `json:"fileName"`
	MimeType   string            `json:"mimeType"`
	Mapping    map[string]string `json:"mapping"`
	CompanyID  string            `json:"companyId"`
	EntityType EntityType        `json:"entityType"`
}

// RawRow is one file row keyed by column header, before mapping.
type RawRow map[string]string

// Record is one mapped row keyed by canonical field key. Values are
// normalized strings; defaults are applied in place during validation.
type Record map[string]string

// Empty reports whether every field value is blank.
func (r Record) Empty() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

// Progress is emitted after every persisted record. The label travels
// under an entity-specific JSON field name (currentDirector,
// currentShare, ...), so marshalling is dynamic.
type Progress struct {
	PercentComplete int
	LabelField      string
	Label           string
}

// MarshalJSON emits {"percentComplete": n, "<labelField>": label}.
func (p Progress) MarshalJSON() ([]byte, error) {
	out := map[string]any{"percentComplete": p.PercentComplete}
	if p.LabelField != "" {
		out[p.LabelField] = p.Label
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores PercentComplete; the label field is carried
// for subscribers and not round-tripped.
func (p *Progress) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if pc, ok := raw["percentComplete"].(float64); ok {
		p.PercentComplete = int(pc)
	}
	for k, v := range raw {
		if k == "percentComplete" {
			continue
		}
		if s, ok := v.(string); ok {
			p.LabelField = k
			p.Label = s
		}
	}
	return nil
}

// Result is the terminal summary of a finished job.
type Result struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}
