package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"alfredoptarigan/interview-simulator/internal/models"
)

// ErrMalformedAttachment marks an EncodedAttachment that cannot be decoded
// back into bytes. Callers treat the record carrying it as corrupt.
var ErrMalformedAttachment = errors.New("malformed encoded attachment")

// AttachmentCodec converts between the in-memory and at-rest forms of a
// resume attachment. Both directions are pure transformations over the
// provided bytes.
type AttachmentCodec interface {
	ReadAttachment(r io.Reader, filename string) (*models.Attachment, error)
	Encode(att *models.Attachment) (*models.EncodedAttachment, error)
	Decode(enc *models.EncodedAttachment) (*models.Attachment, error)
}

type attachmentCodec struct{}

func NewAttachmentCodec() AttachmentCodec {
	return &attachmentCodec{}
}

// ReadAttachment implements AttachmentCodec. The MIME type is sniffed from
// the content itself; a client-declared type is never trusted.
func (c *attachmentCodec) ReadAttachment(r io.Reader, filename string) (*models.Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return &models.Attachment{
		Filename: filename,
		MimeType: mimetype.Detect(data).String(),
		Data:     data,
	}, nil
}

// Encode implements AttachmentCodec.
func (c *attachmentCodec) Encode(att *models.Attachment) (*models.EncodedAttachment, error) {
	if att == nil || len(att.Data) == 0 {
		return nil, fmt.Errorf("attachment has no content")
	}

	mimeType := att.MimeType
	if mimeType == "" {
		mimeType = mimetype.Detect(att.Data).String()
	}

	return &models.EncodedAttachment{
		Filename:      att.Filename,
		MimeType:      mimeType,
		Base64Payload: base64.StdEncoding.EncodeToString(att.Data),
	}, nil
}

// Decode implements AttachmentCodec. A payload that is not well-formed
// base64, or a record without a recoverable MIME type, is a hard failure:
// it is never silently defaulted.
func (c *attachmentCodec) Decode(enc *models.EncodedAttachment) (*models.Attachment, error) {
	if enc == nil {
		return nil, fmt.Errorf("%w: record is empty", ErrMalformedAttachment)
	}

	if strings.TrimSpace(enc.MimeType) == "" {
		return nil, fmt.Errorf("%w: missing MIME type", ErrMalformedAttachment)
	}

	data, err := base64.StdEncoding.DecodeString(enc.Base64Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAttachment, err)
	}

	return &models.Attachment{
		Filename: enc.Filename,
		MimeType: enc.MimeType,
		Data:     data,
	}, nil
}
