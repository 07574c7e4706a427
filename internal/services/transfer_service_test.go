package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/internal/repository"
	"github.com/contactbook/engine/internal/testutil"
	"github.com/contactbook/engine/internal/transfer"
	appErr "github.com/contactbook/engine/pkg/errors"
)

func TestTransferService_ImportJSONSkipsDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, "owner@example.com")
	repos := repository.NewManager(db)
	contacts := NewContactService(repos.Contacts(), tickingClock(t0))
	svc := NewTransferService(repos, tickingClock(t0))
	ctx := context.Background()

	_, err := contacts.Create(ctx, owner.ID, ContactDraft{Name: "Existing"})
	require.NoError(t, err)

	n, err := svc.Import(ctx, owner.ID, transfer.FormatJSON, []byte(`[
		{"name": "existing"},
		{"name": "New One", "phones": [{"number": "1"}], "category": "Work"},
		{"name": "new one"},
		{"name": "   "},
		{"name": "Nulls", "category": null, "notes": null}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := contacts.List(ctx, owner.ID, ContactQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	byName := map[string]models.Contact{}
	for _, c := range all {
		byName[c.Name] = c
	}
	assert.Equal(t, "Work", byName["New One"].Category)
	assert.Equal(t, []models.Phone{{Number: "1", Label: "mobile"}}, []models.Phone(byName["New One"].Phones))
	assert.Equal(t, "General", byName["Nulls"].Category)
	assert.Equal(t, "", byName["Nulls"].Notes)
}

func TestTransferService_ImportCSV(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, "owner@example.com")
	repos := repository.NewManager(db)
	svc := NewTransferService(repos, tickingClock(t0))
	ctx := context.Background()

	n, err := svc.Import(ctx, owner.ID, transfer.FormatCSV, []byte("name,phone,email,category,notes\nZoe,,,,\nYan,555,yan@example.com,Friends,hi\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := repos.Contacts().ListForExport(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Zoe", list[0].Name)
	assert.Empty(t, list[0].Phones)
	assert.Empty(t, list[0].Emails)
	assert.Equal(t, "", list[0].Category)
	assert.Equal(t, []models.EmailAddress{{Email: "yan@example.com", Label: "personal"}}, []models.EmailAddress(list[1].Emails))
}

func TestTransferService_ImportCSVWithoutCategoryColumn(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, "owner@example.com")
	repos := repository.NewManager(db)
	svc := NewTransferService(repos, tickingClock(t0))
	ctx := context.Background()

	n, err := svc.Import(ctx, owner.ID, transfer.FormatCSV, []byte("name,phone\nXia,555\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := repos.Contacts().ListForExport(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "General", list[0].Category)
}

func TestTransferService_ImportSkipsNamelessRecords(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, "owner@example.com")
	repos := repository.NewManager(db)
	svc := NewTransferService(repos, tickingClock(t0))
	ctx := context.Background()

	n, err := svc.Import(ctx, owner.ID, transfer.FormatJSON, []byte(`[
		{"phones": [{"number": "555"}]},
		{"name": ""},
		{"name": " \t "},
		{"name": "Named"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.Import(ctx, owner.ID, transfer.FormatCSV, []byte("name,phone\n,555\n"))
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := repos.Contacts().ListForExport(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Named", list[0].Name)
}

func TestTransferService_MalformedRecordCarriesIndex(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, "owner@example.com")
	svc := NewTransferService(repository.NewManager(db), nil)

	_, err := svc.Import(context.Background(), owner.ID, transfer.FormatJSON,
		[]byte(`[{"name": "A"}, {"name": "B"}, {"name": "C", "emails": [{"email": "nope"}]}]`))
	var ae *appErr.AppError
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, appErr.CodeMalformedInput, ae.Code)
	assert.Equal(t, 3, ae.Meta["record"])
	assert.Contains(t, ae.Message, "record 3")
}

func TestTransferService_MalformedInsertsNothing(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, "owner@example.com")
	repos := repository.NewManager(db)
	svc := NewTransferService(repos, nil)
	ctx := context.Background()

	for name, tc := range map[string]struct {
		format transfer.Format
		doc    string
	}{
		"broken json":   {transfer.FormatJSON, `[{"name": "A"}, {"name":`},
		"bad email":     {transfer.FormatJSON, `[{"name": "A"}, {"name": "B", "emails": [{"email": "nope"}]}]`},
		"broken csv":    {transfer.FormatCSV, "name,notes\nA,\"open\n"},
		"csv bad email": {transfer.FormatCSV, "name,email\nA,a@example.com\nB,nope\n"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Import(ctx, owner.ID, tc.format, []byte(tc.doc))
			require.True(t, appErr.IsCode(err, appErr.CodeMalformedInput), "got %v", err)

			n, err := repos.Contacts().CountByUser(ctx, owner.ID)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestTransferService_JSONRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice@example.com")
	bob := testutil.NewUser(t, db, "bob@example.com")
	repos := repository.NewManager(db)
	contacts := NewContactService(repos.Contacts(), tickingClock(t0))
	svc := NewTransferService(repos, tickingClock(t0))
	ctx := context.Background()

	drafts := []ContactDraft{
		{
			Name:     "Bob",
			Phones:   []models.Phone{{Number: "1", Label: "work"}, {Number: "2", Label: "home"}},
			Emails:   []models.EmailAddress{{Email: "bob@example.com", Label: "work"}},
			Category: strPtr("Work"),
			Notes:    strPtr("line one\nline two"),
		},
		{Name: "Ann"},
	}
	for _, d := range drafts {
		_, err := contacts.Create(ctx, alice.ID, d)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, alice.ID, transfer.FormatJSON, &buf))

	n, err := svc.Import(ctx, bob.ID, transfer.FormatJSON, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	src, err := repos.Contacts().ListForExport(ctx, alice.ID)
	require.NoError(t, err)
	dst, err := repos.Contacts().ListForExport(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, dst, len(src))
	for i := range src {
		assert.Equal(t, src[i].Name, dst[i].Name)
		assert.Equal(t, src[i].Category, dst[i].Category)
		assert.Equal(t, src[i].Notes, dst[i].Notes)
		assert.Equal(t, src[i].Phones, dst[i].Phones)
		assert.Equal(t, src[i].Emails, dst[i].Emails)
		assert.Equal(t, bob.ID, dst[i].UserID)
		assert.NotEqual(t, src[i].ID, dst[i].ID)
	}
}

func TestTransferService_ExportCSV(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, "owner@example.com")
	repos := repository.NewManager(db)
	contacts := NewContactService(repos.Contacts(), tickingClock(t0))
	svc := NewTransferService(repos, nil)
	ctx := context.Background()

	_, err := contacts.Create(ctx, owner.ID, ContactDraft{
		Name:   "Bob",
		Phones: []models.Phone{{Number: "1", Label: "work"}, {Number: "2", Label: "home"}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, owner.ID, transfer.FormatCSV, &buf))
	assert.Equal(t, "name,phone,email,category,notes\nBob,1,,General,\n", buf.String())
}
