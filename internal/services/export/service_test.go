package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/models"
	"github.com/ternarybob/docspark/internal/services/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type failingPDFService struct{}

func (failingPDFService) ConvertMarkdownToPDF(markdown, title string) ([]byte, error) {
	return nil, errors.New("renderer unavailable")
}

type capturingPDFService struct {
	markdown string
	title    string
}

func (c *capturingPDFService) ConvertMarkdownToPDF(markdown, title string) ([]byte, error) {
	c.markdown = markdown
	c.title = title
	return []byte("%PDF-stub"), nil
}

func sampleRequest() *models.ExportRequest {
	return &models.ExportRequest{
		Filename:      "notes.docx",
		Summary:       "Short summary.\n",
		BulletPoints:  []string{"First point", "Second point"},
		RewrittenText: "Improved text.",
	}
}

func TestExportText(t *testing.T) {
	service := NewService(pdf.NewService(arbor.NewLogger()), arbor.NewLogger())

	out := string(service.ExportText(sampleRequest()))
	assert.Equal(t, "notes.docx\n"+
		"==========\n\n"+
		"SUMMARY\n\nShort summary.\n\n"+
		"KEY POINTS\n\n- First point\n- Second point\n\n"+
		"ENHANCED VERSION\n\nImproved text.\n", out)
}

func TestExportText_OmitsEmptySections(t *testing.T) {
	service := NewService(pdf.NewService(arbor.NewLogger()), arbor.NewLogger())

	out := string(service.ExportText(&models.ExportRequest{Summary: "Only this"}))
	assert.True(t, strings.HasPrefix(out, "document\n"))
	assert.NotContains(t, out, "KEY POINTS")
	assert.NotContains(t, out, "ENHANCED VERSION")
}

func TestExportPDF(t *testing.T) {
	service := NewService(pdf.NewService(arbor.NewLogger()), arbor.NewLogger())

	data, err := service.ExportPDF(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportPDF_MarkdownIsEscaped(t *testing.T) {
	capture := &capturingPDFService{}
	service := NewService(capture, arbor.NewLogger())

	_, err := service.ExportPDF(&models.ExportRequest{
		Filename:     "../secret/plan.txt",
		Summary:      "# not a heading *not bold*",
		BulletPoints: []string{"- nested marker"},
	})
	require.NoError(t, err)
	assert.Equal(t, "plan.txt", capture.title)
	assert.Contains(t, capture.markdown, "## Summary\n\n\\# not a heading \\*not bold\\*")
	assert.Contains(t, capture.markdown, "- \\- nested marker")
}

func TestEscapeMarkdown_LineStartsStayLiteral(t *testing.T) {
	input := "Intro line\n1. first step\n2) second step\n\n    indented like code\n\tTabbed\n===\nAT&amp;T"

	escaped := escapeMarkdown(input)
	assert.Contains(t, escaped, `1\. first step`)
	assert.Contains(t, escaped, `2\) second step`)
	assert.Contains(t, escaped, "\nindented like code")
	assert.Contains(t, escaped, `\===`)
	assert.Contains(t, escaped, `AT\&amp;T`)

	source := []byte("## Summary\n\n" + escaped + "\n")
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []ast.NodeKind
	require.NoError(t, ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Type() == ast.TypeBlock && n.Kind() != ast.KindDocument {
			blocks = append(blocks, n.Kind())
		}
		return ast.WalkContinue, nil
	}))
	for _, kind := range blocks {
		assert.NotContains(t, []ast.NodeKind{ast.KindList, ast.KindListItem, ast.KindCodeBlock}, kind)
	}
	assert.Equal(t, ast.KindHeading, blocks[0])
}

func TestExportPDF_RendererFailure(t *testing.T) {
	service := NewService(failingPDFService{}, arbor.NewLogger())

	_, err := service.ExportPDF(sampleRequest())
	assert.ErrorContains(t, err, "renderer unavailable")
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "notes_docspark.pdf", DownloadName("notes.docx", "pdf"))
	assert.Equal(t, "document_docspark.txt", DownloadName("", "txt"))
	assert.Equal(t, "plan_docspark.txt", DownloadName("dir/plan.txt", "txt"))
}
