package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-simulator/internal/models"
	"alfredoptarigan/interview-simulator/internal/services"
)

type InterviewHandler struct {
	interview   services.InterviewService
	store       services.SetupStore
	codec       services.AttachmentCodec
	maxFileSize int64
}

func NewInterviewHandler(
	interview services.InterviewService,
	store services.SetupStore,
	codec services.AttachmentCodec,
	maxFileSize int64,
) *InterviewHandler {
	return &InterviewHandler{
		interview:   interview,
		store:       store,
		codec:       codec,
		maxFileSize: maxFileSize,
	}
}

// HandleStart handles POST /interview/start. The setup comes either from
// the multipart form on the request or, with an empty body, from the saved
// slot.
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	setup, err := h.resolveSetup(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	turn, err := h.interview.Start(c.Context(), setup)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSetupIncomplete):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrBusy):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			// The explanatory error turn stands in for the interview
			body := fiber.Map{"error": err.Error()}
			if turn != nil {
				body["turn"] = turn
			}
			return c.Status(fiber.StatusBadGateway).JSON(body)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(models.StartResponse{Turn: *turn})
}

// HandleSend handles POST /interview/send
func (h *InterviewHandler) HandleSend(c *fiber.Ctx) error {
	var req models.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	turns, err := h.interview.Send(c.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBusy):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrNoSession):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(models.ExchangeResponse{Turns: turns})
}

// HandleAutoReply handles POST /interview/auto-reply. When the
// preconditions are not met the call is a silent no-op: nothing is
// appended and the response carries no turns.
func (h *InterviewHandler) HandleAutoReply(c *fiber.Ctx) error {
	turns, err := h.interview.AutoReply(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.ExchangeResponse{Turns: turns})
}

// HandleHistory handles GET /interview/history
func (h *InterviewHandler) HandleHistory(c *fiber.Ctx) error {
	turns, busy, lastError := h.interview.History()

	return c.JSON(models.HistoryResponse{
		Turns:     turns,
		Busy:      busy,
		LastError: lastError,
	})
}

func (h *InterviewHandler) resolveSetup(c *fiber.Ctx) (*models.JobSetup, error) {
	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return parseSetupForm(c, h.codec, h.maxFileSize)
	}

	setup, err := h.store.Load()
	if err != nil {
		return nil, err
	}
	if setup == nil {
		return nil, errors.New("no saved setup; submit the setup form or save one first")
	}

	return setup, nil
}
