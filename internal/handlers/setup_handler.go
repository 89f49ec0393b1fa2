package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-simulator/internal/models"
	"alfredoptarigan/interview-simulator/internal/services"
)

const previewMaxRunes = 400

type SetupHandler struct {
	store       services.SetupStore
	codec       services.AttachmentCodec
	parser      services.ResumeParserService
	maxFileSize int64
}

func NewSetupHandler(
	store services.SetupStore,
	codec services.AttachmentCodec,
	parser services.ResumeParserService,
	maxFileSize int64,
) *SetupHandler {
	return &SetupHandler{
		store:       store,
		codec:       codec,
		parser:      parser,
		maxFileSize: maxFileSize,
	}
}

// HandleSave handles POST /setup
func (h *SetupHandler) HandleSave(c *fiber.Ctx) error {
	setup, err := parseSetupForm(c, h.codec, h.maxFileSize)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.store.Save(setup); err != nil {
		if errors.Is(err, services.ErrAttachmentRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save setup: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(h.setupResponse(setup))
}

// HandleGet handles GET /setup
func (h *SetupHandler) HandleGet(c *fiber.Ctx) error {
	setup, err := h.store.Load()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to load setup: %v", err),
		})
	}

	if setup == nil {
		return c.JSON(models.SetupResponse{Saved: false})
	}

	return c.JSON(h.setupResponse(setup))
}

// HandleClear handles DELETE /setup
func (h *SetupHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.store.Clear(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to clear setup: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Setup cleared",
	})
}

func (h *SetupHandler) setupResponse(setup *models.JobSetup) models.SetupResponse {
	resp := models.SetupResponse{
		Saved:            true,
		Title:            setup.Title,
		Responsibilities: setup.Responsibilities,
		Requirements:     setup.Requirements,
		Language:         string(setup.Language),
	}

	if setup.Attachment != nil {
		resp.ResumeFilename = setup.Attachment.Filename
		resp.ResumeMimeType = setup.Attachment.MimeType
		resp.ResumeSize = len(setup.Attachment.Data)
		resp.ResumePreview = h.parser.Preview(setup.Attachment, previewMaxRunes)
	}

	return resp
}

// parseSetupForm reads the multipart setup form shared by the setup and
// interview-start endpoints. The resume file is required here only when
// present checks are left to the caller; an oversized file is always
// rejected.
func parseSetupForm(c *fiber.Ctx, codec services.AttachmentCodec, maxFileSize int64) (*models.JobSetup, error) {
	language, err := models.ParseLanguage(c.FormValue("language"))
	if err != nil {
		return nil, err
	}

	setup := &models.JobSetup{
		Title:            strings.TrimSpace(c.FormValue("title")),
		Responsibilities: strings.TrimSpace(c.FormValue("responsibilities")),
		Requirements:     strings.TrimSpace(c.FormValue("requirements")),
		Language:         language,
	}

	file, err := c.FormFile("resume")
	if err != nil {
		// No file in the form; the caller decides whether that is fatal
		return setup, nil
	}

	if file.Size > maxFileSize {
		return nil, fmt.Errorf("resume file too large. Max size: %d bytes", maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	attachment, err := codec.ReadAttachment(src, file.Filename)
	if err != nil {
		return nil, err
	}

	setup.Attachment = attachment
	return setup, nil
}
