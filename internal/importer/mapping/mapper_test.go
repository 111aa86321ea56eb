package mapping

import (
	"testing"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	m := New(map[string]string{
		"firstName":       "First Name",
		"lastName":        "Surname",
		"dateOfBirth":     "DOB",
		"appointmentDate": "Appointed",
		"occupation":      "Occupation",
	})

	record := m.Map(models.RawRow{
		"First Name": "Jane",
		"Surname":    "Doe",
		"DOB":        "1985-02-14",
		"Appointed":  "45000",
		"Unmapped":   "ignored",
	})

	assert.Equal(t, models.Record{
		"firstName":       "Jane",
		"lastName":        "Doe",
		"dateOfBirth":     "14/02/1985",
		"appointmentDate": "15/03/2023",
		"occupation":      "",
	}, record)
}

func TestMap_UnparsableDateYieldsEmpty(t *testing.T) {
	m := New(map[string]string{"dateOfBirth": "DOB"})

	record := m.Map(models.RawRow{"DOB": "not a date"})
	assert.Equal(t, "", record["dateOfBirth"])
}

func TestMapAll(t *testing.T) {
	m := New(map[string]string{"firstName": "Name"})

	records := m.MapAll([]models.RawRow{
		{"Name": "Jane"},
		{"Name": "John"},
	})
	assert.Len(t, records, 2)
	assert.Equal(t, "John", records[1]["firstName"])
}
