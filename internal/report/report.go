// Package report renders analysis results and the upload form as HTML.
// All dynamic text goes through html/template and is escaped.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"transcript-backend/internal/analyses"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Section is one heading of the report: a paragraph or a bulleted list.
type Section struct {
	Title  string
	Text   string
	Items  []string
	IsList bool
}

type reportView struct {
	Sections []Section
}

// Sections lays the result out in display order.
func Sections(r analyses.Result) []Section {
	return []Section{
		{Title: "Management Tone", Text: r.ManagementTone},
		{Title: "Confidence Level", Text: r.ConfidenceLevel},
		{Title: "Key Positives", Items: r.KeyPositives, IsList: true},
		{Title: "Key Concerns", Items: r.KeyConcerns, IsList: true},
		{Title: "Forward Guidance", Text: r.ForwardGuidance},
		{Title: "Capacity Utilization Trends", Text: r.CapacityUtilizationTrends},
		{Title: "Growth Initiatives", Items: r.GrowthInitiatives, IsList: true},
	}
}

// Render writes the full report document for r.
func Render(w io.Writer, r analyses.Result) error {
	if err := templates.ExecuteTemplate(w, "report.html", reportView{Sections: Sections(r)}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// RenderBytes renders the report into memory so nothing is written on failure.
func RenderBytes(r analyses.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var uploadForm = mustRenderStatic("upload.html")

// UploadForm returns the static upload page.
func UploadForm() []byte {
	return uploadForm
}

func mustRenderStatic(name string) []byte {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, nil); err != nil {
		panic(fmt.Sprintf("render %s: %v", name, err))
	}
	return buf.Bytes()
}
