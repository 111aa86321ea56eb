// Package dates normalizes the date values found in uploaded statutory
// files. Source cells arrive as DD/MM/YYYY strings, ISO strings, or raw
// spreadsheet day serials; everything is converted to one canonical
// output format before validation and persistence.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Format selects the canonical output representation.
type Format string

const (
	FormatDMY Format = "DD/MM/YYYY"
	FormatISO Format = "YYYY-MM-DD"
)

const (
	layoutDMY = "02/01/2006"
	layoutISO = "2006-01-02"
)

// serialEpoch is 1899-12-30, one day before the nominal spreadsheet
// epoch: serials count 1900-02-29 as a real day, so shifting the base
// back keeps every serial after that phantom day correct.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	reDMY    = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	reISO    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reSerial = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Encoding is the detected source representation of a date cell.
type Encoding string

const (
	EncodingDMY     Encoding = "DD/MM/YYYY"
	EncodingISO     Encoding = "YYYY-MM-DD"
	EncodingSerial  Encoding = "SERIAL"
	EncodingUnknown Encoding = ""
)

// Detect reports the encoding of a raw cell value.
func Detect(value string) Encoding {
	switch {
	case reDMY.MatchString(value):
		return EncodingDMY
	case reISO.MatchString(value):
		return EncodingISO
	case reSerial.MatchString(value):
		return EncodingSerial
	default:
		return EncodingUnknown
	}
}

// ParseError reports an unparsable date value together with the field
// context it came from.
type ParseError struct {
	Value   string
	Context string
}

func (e *ParseError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("unparsable date %q", e.Value)
	}
	return fmt.Sprintf("unparsable date %q for %s", e.Value, e.Context)
}

// Parse converts a raw cell value into a time.Time. The context label
// is carried into the error for diagnostics.
func Parse(value, context string) (time.Time, error) {
	switch Detect(value) {
	case EncodingDMY:
		t, err := time.Parse(layoutDMY, value)
		if err != nil {
			return time.Time{}, &ParseError{Value: value, Context: context}
		}
		return t, nil
	case EncodingISO:
		t, err := time.Parse(layoutISO, value)
		if err != nil {
			return time.Time{}, &ParseError{Value: value, Context: context}
		}
		return t, nil
	case EncodingSerial:
		serial, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return time.Time{}, &ParseError{Value: value, Context: context}
		}
		return serialEpoch.Add(time.Duration(serial * 24 * float64(time.Hour))), nil
	default:
		return time.Time{}, &ParseError{Value: value, Context: context}
	}
}

// Options configures Normalize.
type Options struct {
	// Field labels the value in logs and errors, e.g. "appointmentDate".
	Field string
	// Strict surfaces a *ParseError instead of swallowing it.
	Strict bool
	// Output selects the canonical format; FormatDMY when unset.
	Output Format
}

// Normalize converts a raw date cell to the canonical output format.
// Empty or unparsable input yields "" so that required-field validation
// can reject it later; in strict mode the parse error is returned.
func Normalize(value string, opts Options) (string, error) {
	if opts.Output == "" {
		opts.Output = FormatDMY
	}
	if value == "" {
		return "", nil
	}
	t, err := Parse(value, opts.Field)
	if err != nil {
		if opts.Strict {
			return "", err
		}
		return "", nil
	}
	return FormatAs(t, opts.Output), nil
}

// FormatAs renders a time in the given canonical format.
func FormatAs(t time.Time, f Format) string {
	if f == FormatISO {
		return t.Format(layoutISO)
	}
	return t.Format(layoutDMY)
}

// ParseDMY parses a canonical DD/MM/YYYY string.
func ParseDMY(value string) (time.Time, error) {
	t, err := time.Parse(layoutDMY, value)
	if err != nil {
		return time.Time{}, &ParseError{Value: value}
	}
	return t, nil
}

// IsValidDMY reports whether value is a real calendar date in
// DD/MM/YYYY form. time.Parse rejects component overflow (31/02/2024),
// which is exactly the strictness record validation needs.
func IsValidDMY(value string) bool {
	if !reDMY.MatchString(value) {
		return false
	}
	_, err := time.Parse(layoutDMY, value)
	return err == nil
}

// InStatutoryRange reports whether a date is plausible for a statutory
// register entry.
func InStatutoryRange(t time.Time) bool {
	min := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)
	return !t.Before(min) && !t.After(max)
}

// ValidAppointment reports whether an appointment date falls on or
// after the director's 18th birthday.
func ValidAppointment(appointment, dateOfBirth time.Time) bool {
	return !appointment.Before(dateOfBirth.AddDate(18, 0, 0))
}

// ValidResignation reports whether a resignation date falls strictly
// after the appointment date.
func ValidResignation(resignation, appointment time.Time) bool {
	return resignation.After(appointment)
}
