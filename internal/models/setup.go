package models

import (
	"fmt"
	"strings"
)

type Language string

const (
	LanguageEN Language = "en"
	LanguageZH Language = "zh"
)

func ParseLanguage(value string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(value))) {
	case LanguageEN:
		return LanguageEN, nil
	case LanguageZH:
		return LanguageZH, nil
	case "":
		return LanguageEN, nil
	default:
		return "", fmt.Errorf("unsupported language: %q", value)
	}
}

// Attachment is the in-memory form of the candidate's resume.
type Attachment struct {
	Filename string
	MimeType string
	Data     []byte
}

// EncodedAttachment is the at-rest form of an Attachment. Round-tripping
// through Decode must reproduce the original bytes exactly.
type EncodedAttachment struct {
	Filename      string `json:"filename"`
	MimeType      string `json:"mime_type"`
	Base64Payload string `json:"base64_payload"`
}

type JobSetup struct {
	Title            string
	Responsibilities string
	Requirements     string
	Language         Language
	Attachment       *Attachment
}

// Validate reports the first missing required field. An interview cannot
// start while any of these is empty.
func (s *JobSetup) Validate() error {
	switch {
	case strings.TrimSpace(s.Title) == "":
		return fmt.Errorf("title is required")
	case strings.TrimSpace(s.Responsibilities) == "":
		return fmt.Errorf("responsibilities is required")
	case strings.TrimSpace(s.Requirements) == "":
		return fmt.Errorf("requirements is required")
	case s.Attachment == nil || len(s.Attachment.Data) == 0:
		return fmt.Errorf("resume attachment is required")
	}

	if _, err := ParseLanguage(string(s.Language)); err != nil {
		return err
	}

	return nil
}
