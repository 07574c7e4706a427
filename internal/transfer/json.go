package transfer

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/contactbook/engine/internal/models"
	appErr "github.com/contactbook/engine/pkg/errors"
)

type jsonRecord struct {
	Name           string                `json:"name"`
	Phones         []models.Phone        `json:"phones"`
	Emails         []models.EmailAddress `json:"emails"`
	Category       *string               `json:"category"`
	Notes          *string               `json:"notes"`
	ProfilePicture *string               `json:"profile_picture"`
}

// DecodeJSON parses a JSON array of contact objects. Unknown fields, such as
// the ids and timestamps of an export, are ignored.
func DecodeJSON(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, appErr.New(appErr.CodeMalformedInput, "invalid JSON file: expected an array of contacts")
	}

	var docs []jsonRecord
	if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeMalformedInput, "invalid JSON file: "+err.Error())
	}

	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, Record{
			Name:           d.Name,
			Phones:         d.Phones,
			Emails:         d.Emails,
			Category:       d.Category,
			Notes:          d.Notes,
			ProfilePicture: d.ProfilePicture,
		})
	}
	return out, nil
}

// EncodeJSON writes contacts as an indented JSON array.
func EncodeJSON(w io.Writer, contacts []models.Contact) error {
	if contacts == nil {
		contacts = []models.Contact{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(contacts)
}
