package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInitWriter_JSONLine(t *testing.T) {
	var buf bytes.Buffer
	l, err := InitWriter("debug", "json", &buf)
	require.NoError(t, err)

	id := uuid.MustParse("9f1c2a34-1111-4a5b-8c7d-0123456789ab")
	l.Info("contact created", UserID(id))
	Sync()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "contact created", line["message"])
	require.Equal(t, "info", line["level"])
	require.Equal(t, id.String(), line["user_id"])
	require.Contains(t, line, "time")
}

func TestInitWriter_Rejects(t *testing.T) {
	_, err := InitWriter("loud", "json", &bytes.Buffer{})
	require.Error(t, err)

	_, err = InitWriter("info", "xml", &bytes.Buffer{})
	require.Error(t, err)
}

func TestL_AfterNop(t *testing.T) {
	InitNop()
	require.NotPanics(t, func() { L().Info("discarded") })
}
