package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/interview-simulator/internal/models"
)

// ResumeParserService extracts plain text from an uploaded resume, used to
// show a short preview of what was saved. Only PDF content is parseable;
// other formats yield no preview.
type ResumeParserService interface {
	ExtractText(data []byte) (string, error)
	Preview(att *models.Attachment, maxRunes int) string
}

type resumeParserService struct{}

func NewResumeParserService() ResumeParserService {
	return &resumeParserService{}
}

// ExtractText implements ResumeParserService.
func (p *resumeParserService) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// Preview implements ResumeParserService. Extraction failures are not
// errors at this level: the preview is informational only.
func (p *resumeParserService) Preview(att *models.Attachment, maxRunes int) string {
	if att == nil || att.MimeType != "application/pdf" {
		return ""
	}

	text, err := p.ExtractText(att.Data)
	if err != nil {
		return ""
	}

	text = CleanText(text)
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// CleanText normalizes extracted text: trims each line and drops blanks.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
