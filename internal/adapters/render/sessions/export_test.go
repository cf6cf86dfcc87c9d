package sessions

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func exportFixture() []domain.Session {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return []domain.Session{
		{
			ID:        "12",
			Title:     "Backend role questions",
			JobID:     "7",
			CreatedAt: created,
			UpdatedAt: created.Add(time.Hour),
			Messages: []domain.Message{
				{ID: "1", Role: domain.RoleUser, Content: "Is the role remote?", CreatedAt: created.Add(59 * time.Minute)},
				{ID: "2", Role: domain.RoleAssistant, Content: "Yes.", CreatedAt: created.Add(time.Hour)},
			},
		},
		{ID: "9", CreatedAt: created},
	}
}

func TestExportJSONWithoutMessages(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Export(&out, exportFixture(), FormatJSON, false))

	var doc exportDocument
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Sessions, 2)
	assert.Equal(t, "12", doc.Sessions[0].ID)
	assert.Equal(t, "7", doc.Sessions[0].JobID)
	assert.Empty(t, doc.Sessions[0].Messages)
	assert.NotContains(t, out.String(), "\"messages\"")
	assert.Equal(t, doc.Sessions[1].CreatedAt, doc.Sessions[1].UpdatedAt)
}

func TestExportYAMLWithMessages(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Export(&out, exportFixture(), FormatYAML, true))

	assert.Contains(t, out.String(), "id: \"12\"")

	var doc exportDocument
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Sessions, 2)
	require.Len(t, doc.Sessions[0].Messages, 2)
	assert.Equal(t, "user", doc.Sessions[0].Messages[0].Role)
	assert.Equal(t, "Yes.", doc.Sessions[0].Messages[1].Content)
	assert.Empty(t, doc.Sessions[1].Messages)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw     string
		want    Format
		wantErr bool
	}{
		{raw: "", want: FormatJSON},
		{raw: "JSON", want: FormatJSON},
		{raw: "yaml", want: FormatYAML},
		{raw: "yml", want: FormatYAML},
		{raw: "csv", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseFormat(tc.raw)
		if tc.wantErr {
			require.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}
