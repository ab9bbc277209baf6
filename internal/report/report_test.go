package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcript-backend/internal/analyses"
)

func sampleResult() analyses.Result {
	return analyses.Result{
		ManagementTone:            "Confident",
		ConfidenceLevel:           "High",
		KeyPositives:              []string{"Revenue up 12%", "Margin expansion"},
		KeyConcerns:               []string{"Input costs"},
		ForwardGuidance:           "Raised FY guidance",
		CapacityUtilizationTrends: analyses.NotMentioned,
		GrowthInitiatives:         []string{"New plant"},
	}
}

func TestRenderContainsFields(t *testing.T) {
	out, err := RenderBytes(sampleResult())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<li>Revenue up 12%</li>")
	assert.Contains(t, html, "<li>Margin expansion</li>")
	assert.Contains(t, html, "<p>Confident</p>")
	assert.Contains(t, html, "<p>Not Mentioned</p>")
	assert.Contains(t, html, "<h3>Capacity Utilization Trends</h3>")
	assert.Contains(t, html, `<a href="/test">Analyze Another File</a>`)
	assert.Equal(t, 4, strings.Count(html, "<li>"))
}

func TestRenderEscapesModelOutput(t *testing.T) {
	r := sampleResult()
	r.ManagementTone = `<script>alert("x")</script>`
	r.KeyConcerns = []string{`<img src=x onerror=alert(1)>`}

	out, err := RenderBytes(r)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&lt;img src=x onerror=alert(1)&gt;")
}

func TestRenderEmptyListsAndBlankScalars(t *testing.T) {
	out, err := RenderBytes(analyses.Result{ManagementTone: "Neutral"})
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<ul></ul>")
	assert.Contains(t, html, "<p></p>")
}

func TestUploadFormIsStatic(t *testing.T) {
	first := UploadForm()
	second := UploadForm()
	assert.True(t, bytes.Equal(first, second))

	html := string(first)
	assert.Contains(t, html, `action="/upload"`)
	assert.Contains(t, html, `method="POST"`)
	assert.Contains(t, html, `enctype="multipart/form-data"`)
	assert.Contains(t, html, `type="file" name="file"`)
}
