package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcript-backend/internal/analyses"
)

func sampleResult() analyses.Result {
	return analyses.Result{
		ManagementTone:            "Confident",
		ConfidenceLevel:           "High",
		KeyPositives:              []string{"Revenue up 12%"},
		KeyConcerns:               []string{"Input costs"},
		ForwardGuidance:           "Raised FY guidance",
		CapacityUtilizationTrends: analyses.NotMentioned,
		GrowthInitiatives:         []string{"New plant in Pune"},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, write(&buf, formatJSON, sampleResult()))

	var got analyses.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleResult(), got)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, write(&buf, formatHTML, sampleResult()))

	assert.Contains(t, buf.String(), "<li>Revenue up 12%</li>")
	assert.Contains(t, buf.String(), "Confident")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, writeFile(path, formatJSON, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"management_tone": "Confident"`)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.json")
	err := writeFile(path, formatJSON, sampleResult())
	assert.ErrorContains(t, err, "create output")
}

func TestRunAnalyzeRejectsUnknownFormat(t *testing.T) {
	rootCmd.SetArgs([]string{"--pdf", "call.pdf", "--format", "xml"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, `unsupported format "xml"`)
}
