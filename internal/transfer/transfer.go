// Package transfer converts contacts to and from the JSON and CSV documents
// used for bulk import and export.
package transfer

import (
	"fmt"
	"io"

	"github.com/contactbook/engine/internal/models"
)

// Format is a bulk document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a path segment such as "csv" to a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), true
	}
	return "", false
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Filename is the attachment name an export is served under.
func (f Format) Filename() string {
	return "contacts." + string(f)
}

// Record is one contact read from an import document. Nil pointers mean the
// field was absent (or null) and the importer applies its defaults.
type Record struct {
	Name           string
	Phones         []models.Phone
	Emails         []models.EmailAddress
	Category       *string
	Notes          *string
	ProfilePicture *string
}

// Decode parses an import document in format f.
func Decode(f Format, data []byte) ([]Record, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatCSV:
		return DecodeCSV(data)
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// Encode writes contacts to w in format f.
func Encode(w io.Writer, f Format, contacts []models.Contact) error {
	switch f {
	case FormatJSON:
		return EncodeJSON(w, contacts)
	case FormatCSV:
		return EncodeCSV(w, contacts)
	}
	return fmt.Errorf("unsupported format %q", f)
}
