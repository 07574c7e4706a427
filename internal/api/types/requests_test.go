package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactbook/engine/internal/models"
)

func TestContactPatchRequest_Patch(t *testing.T) {
	var req ContactPatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes": "new", "phones": [{"number": "555"}], "profile_picture": null}`), &req))

	p := req.Patch()
	assert.False(t, p.Name.Set)
	assert.False(t, p.Category.Set)
	assert.False(t, p.Emails.Set)
	assert.True(t, p.Notes.Set)
	assert.Equal(t, "new", p.Notes.Value)
	assert.True(t, p.Phones.Set)
	assert.Equal(t, []models.Phone{{Number: "555", Label: "mobile"}}, p.Phones.Value)
	assert.True(t, p.ProfilePicture.Set, "explicit null clears the picture")
	assert.Nil(t, p.ProfilePicture.Value)
}
