package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-simulator/internal/handlers"
	"alfredoptarigan/interview-simulator/internal/models"
	"alfredoptarigan/interview-simulator/internal/repositories"
	"alfredoptarigan/interview-simulator/internal/services"
)

type scriptedSession struct {
	replies []string
}

func (s *scriptedSession) SendTurn(_ context.Context, _ string) (string, error) {
	if len(s.replies) == 0 {
		return "Thanks, that is all I needed to hear.", nil
	}

	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

type scriptedInterviewer struct {
	session *scriptedSession
}

func (s *scriptedInterviewer) StartInterview(_ context.Context, _ *models.JobSetup) (services.ModelSession, string, error) {
	return s.session, "Welcome. What interests you about this role?", nil
}

func newInterviewApp(t *testing.T, session *scriptedSession) (*fiber.App, services.SetupStore) {
	t.Helper()

	kv := repositories.NewMemoryKVStore()
	codec := services.NewAttachmentCodec()
	store := services.NewSetupStore(kv, codec)
	interview := services.NewInterviewService(&scriptedInterviewer{session: session})
	handler := handlers.NewInterviewHandler(interview, store, codec, testMaxFileSize)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/interview/start", handler.HandleStart)
	api.Post("/interview/send", handler.HandleSend)
	api.Post("/interview/auto-reply", handler.HandleAutoReply)
	api.Get("/interview/history", handler.HandleHistory)

	return app, store
}

func startInterview(t *testing.T, app *fiber.App) models.StartResponse {
	t.Helper()

	body, contentType := setupForm(t, defaultFields(), resumePDF)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/start", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeJSON[models.StartResponse](t, resp)
}

func TestInterviewStartAndSend(t *testing.T) {
	app, _ := newInterviewApp(t, &scriptedSession{replies: []string{
		"Nice. Can you walk me through a recent project?",
	}})

	started := startInterview(t, app)
	assert.Equal(t, models.RoleInterviewer, started.Turn.Role)
	assert.Equal(t, "Welcome. What interests you about this role?", started.Turn.Text)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/send",
		strings.NewReader(`{"text":"I enjoy building reliable backends."}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exchange := decodeJSON[models.ExchangeResponse](t, resp)
	require.Len(t, exchange.Turns, 2)
	assert.Equal(t, models.RoleCandidate, exchange.Turns[0].Role)
	assert.Equal(t, models.RoleInterviewer, exchange.Turns[1].Role)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/interview/history", nil))
	require.NoError(t, err)
	history := decodeJSON[models.HistoryResponse](t, resp)
	assert.Len(t, history.Turns, 3)
	assert.False(t, history.Busy)
}

func TestInterviewStartFromSavedSetup(t *testing.T) {
	app, store := newInterviewApp(t, &scriptedSession{})

	require.NoError(t, store.Save(&models.JobSetup{
		Title:            "Backend Engineer",
		Responsibilities: "Build APIs",
		Requirements:     "3+ yrs Go",
		Language:         models.LanguageEN,
		Attachment: &models.Attachment{
			Filename: "resume.pdf",
			MimeType: "application/pdf",
			Data:     resumePDF,
		},
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/start", bytes.NewReader(nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestInterviewStartWithoutSavedSetup(t *testing.T) {
	app, _ := newInterviewApp(t, &scriptedSession{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/start", bytes.NewReader(nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInterviewStartWithIncompleteForm(t *testing.T) {
	app, _ := newInterviewApp(t, &scriptedSession{})

	fields := defaultFields()
	fields["title"] = ""
	body, contentType := setupForm(t, fields, resumePDF)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/start", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInterviewSendBeforeStart(t *testing.T) {
	app, _ := newInterviewApp(t, &scriptedSession{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/send",
		strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInterviewSendEmptyText(t *testing.T) {
	app, _ := newInterviewApp(t, &scriptedSession{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/send",
		strings.NewReader(`{"text":"  "}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInterviewAutoReply(t *testing.T) {
	app, _ := newInterviewApp(t, &scriptedSession{replies: []string{
		"I have five years of Go experience.",
		"How do you approach testing?",
	}})

	startInterview(t, app)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/interview/auto-reply", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exchange := decodeJSON[models.ExchangeResponse](t, resp)
	require.Len(t, exchange.Turns, 2)
	assert.Equal(t, models.RoleCandidate, exchange.Turns[0].Role)
	assert.Equal(t, "I have five years of Go experience.", exchange.Turns[0].Text)
	assert.Equal(t, "How do you approach testing?", exchange.Turns[1].Text)
}

func TestInterviewAutoReplyBeforeStart(t *testing.T) {
	app, _ := newInterviewApp(t, &scriptedSession{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/interview/auto-reply", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exchange := decodeJSON[models.ExchangeResponse](t, resp)
	assert.Empty(t, exchange.Turns)
}
