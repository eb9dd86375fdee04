package extraction

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// extractDocx walks word/document.xml and returns the non-blank paragraphs joined by newlines
func (e *Extractor) extractDocx(ctx context.Context, path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", failure("DOCX", fmt.Errorf("open package: %w", err))
	}
	defer r.Close()

	var body *zip.File
	for _, f := range r.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", failure("DOCX", fmt.Errorf("%s not found in archive", docxBodyPart))
	}

	rc, err := body.Open()
	if err != nil {
		return "", failure("DOCX", fmt.Errorf("open %s: %w", docxBodyPart, err))
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(ctx, rc)
	if err != nil {
		return "", failure("DOCX", err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// docxParagraphs returns the text of every body-level w:p whose trimmed text is non-empty, untrimmed, in document order.
// Only runs that belong to the paragraph itself (directly or through w:hyperlink) contribute, so table cells,
// text boxes and mc:AlternateContent copies are left out. w:tab and w:br/w:cr map to tab and newline.
func docxParagraphs(ctx context.Context, r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		stack      []string // local names of the open elements
		inText     bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", docxBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch name {
			case "p":
				if parentIs(stack, "body") {
					current.Reset()
				}
			case "t":
				inText = inBodyRun(stack)
			case "tab":
				if inBodyRun(stack) {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inBodyRun(stack) {
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)

		case xml.CharData:
			if inText {
				current.Write(t)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if !parentIs(stack, "body") {
					continue
				}
				text := current.String()
				if strings.TrimSpace(text) != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}
	}

	return paragraphs, nil
}

func parentIs(stack []string, name string) bool {
	return len(stack) > 0 && stack[len(stack)-1] == name
}

// inBodyRun reports whether the innermost open element is a run of a body-level paragraph
func inBodyRun(stack []string) bool {
	n := len(stack)
	if n < 3 || stack[n-1] != "r" {
		return false
	}
	switch stack[n-2] {
	case "p":
		return stack[n-3] == "body"
	case "hyperlink":
		return n >= 4 && stack[n-3] == "p" && stack[n-4] == "body"
	}
	return false
}
