package transfer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/contactbook/engine/internal/models"
	appErr "github.com/contactbook/engine/pkg/errors"
)

// CSVHeader is the column order of an export.
var CSVHeader = []string{"name", "phone", "email", "category", "notes"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeCSV parses a CSV document whose first row names the columns. Rows may
// be shorter or longer than the header; missing cells count as absent.
func DecodeCSV(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, malformedCSV(err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	cell := func(row []string, col string) (string, bool) {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	out := []Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformedCSV(err)
		}

		rec := Record{
			Phones: []models.Phone{},
			Emails: []models.EmailAddress{},
		}
		rec.Name, _ = cell(row, "name")
		if v, _ := cell(row, "phone"); strings.TrimSpace(v) != "" {
			rec.Phones = append(rec.Phones, models.Phone{Number: strings.TrimSpace(v), Label: models.DefaultPhoneLabel})
		}
		if v, _ := cell(row, "email"); strings.TrimSpace(v) != "" {
			rec.Emails = append(rec.Emails, models.EmailAddress{Email: strings.TrimSpace(v), Label: models.DefaultEmailLabel})
		}
		if v, ok := cell(row, "category"); ok {
			rec.Category = &v
		}
		if v, ok := cell(row, "notes"); ok {
			rec.Notes = &v
		}
		out = append(out, rec)
	}
	return out, nil
}

// EncodeCSV writes one row per contact carrying only its first phone number
// and first email address.
func EncodeCSV(w io.Writer, contacts []models.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, c := range contacts {
		var phone, email string
		if len(c.Phones) > 0 {
			phone = c.Phones[0].Number
		}
		if len(c.Emails) > 0 {
			email = c.Emails[0].Email
		}
		if err := cw.Write([]string{c.Name, phone, email, c.Category, c.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func malformedCSV(err error) error {
	return appErr.Wrap(err, appErr.CodeMalformedInput, "invalid CSV file: "+err.Error())
}
