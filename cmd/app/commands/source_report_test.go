package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vttbridge/relay/internal/catalog/domain"
)

func reportRows() []domain.SourceReportRow {
	return []domain.SourceReportRow{
		{SourceID: 2, SourceName: "Player's Handbook", ItemCount: 120, SpellCount: 361, Owned: true},
		{SourceID: 5, SourceName: "Dungeon Master's Guide", ItemCount: 240, SpellCount: 0, Owned: false},
	}
}

func TestRunSourceReport_BlankCookie(t *testing.T) {
	var buf bytes.Buffer
	err := RunSourceReport(context.Background(), "", "text", IOTuple{Writer: &buf})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blank")
}

func TestRenderSourceReport_Text(t *testing.T) {
	var buf bytes.Buffer
	err := renderSourceReport(reportRows(), "text", &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "Player's Handbook")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "Dungeon Master's Guide")
	assert.Contains(t, out, "no")
}

func TestRenderSourceReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := renderSourceReport(reportRows(), "json", &buf)
	require.NoError(t, err)

	var rows []domain.SourceReportRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Player's Handbook", rows[0].SourceName)
	assert.Equal(t, 361, rows[0].SpellCount)
}

func TestRenderSourceReport_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	err := renderSourceReport(reportRows(), "csv", &buf)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
