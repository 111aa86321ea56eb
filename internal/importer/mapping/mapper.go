// Package mapping turns raw file rows into canonical records using the
// field-key to column-name dictionary supplied with the import job.
package mapping

import (
	"strings"

	"github.com/gartstein/registrar/internal/importer/dates"
	"github.com/gartstein/registrar/internal/importer/models"
)

// dateFields are the canonical keys whose values are routed through the
// date normalizer. A missing or unparsable date maps to "" so that
// required-field validation can reject it later instead of aborting the
// import.
var dateFields = map[string]struct{}{
	"dateOfBirth":      {},
	"appointmentDate":  {},
	"resignationDate":  {},
	"dateAcquired":     {},
	"registrationDate": {},
	"dateCreated":      {},
	"allotmentDate":    {},
	"meetingDate":      {},
}

// Mapper applies one job's column mapping to raw rows.
type Mapper struct {
	mapping map[string]string
	output  dates.Format
}

// New constructs a Mapper for the given fieldKey->columnName dictionary.
func New(mapping map[string]string) *Mapper {
	return &Mapper{mapping: mapping, output: dates.FormatDMY}
}

// Map produces one Record from a RawRow. Every declared field key gets
// a value, empty when the source column is blank or absent.
func (m *Mapper) Map(row models.RawRow) models.Record {
	record := make(models.Record, len(m.mapping))
	for key, column := range m.mapping {
		value := strings.TrimSpace(row[column])
		if _, isDate := dateFields[key]; isDate {
			value, _ = dates.Normalize(value, dates.Options{Field: key, Output: m.output})
		}
		record[key] = value
	}
	return record
}

// MapAll maps every row.
func (m *Mapper) MapAll(rows []models.RawRow) []models.Record {
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, m.Map(row))
	}
	return records
}
