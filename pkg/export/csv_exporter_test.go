package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	sheet := Sheet{
		Title:   "Attendance 03/2026",
		Headers: []string{"Date", "Student ID", "Name", "Section", "Status"},
		Rows: [][]string{
			{"2026-03-02", "2024-001", "Budi", "Grade 7A", "Present"},
		},
	}

	content, err := NewCSVExporter().Render(sheet)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, sheet.Headers, records[0])
	assert.Equal(t, "Budi", records[1][2])
}

func TestCSVRenderPadsShortRows(t *testing.T) {
	sheet := Sheet{
		Headers: []string{"A", "B", "C"},
		Rows:    [][]string{{"only"}},
	}

	content, err := NewCSVExporter().Render(sheet)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"only", "", ""}, records[1])
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Sheet{})
	assert.Error(t, err)
}
