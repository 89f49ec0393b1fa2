package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"alfredoptarigan/interview-simulator/internal/models"
)

// ErrEmptyModelReply is returned when the model answers with no usable text
// or no structured candidate content. During start this is a hard
// initialization failure: no session is produced.
var ErrEmptyModelReply = errors.New("received an empty or invalid response from the model")

// ModelSession is the opaque handle to the remote conversational context.
// The remote object is stateful and owned by the session: the only thing a
// caller may do with it is send the next turn.
type ModelSession interface {
	SendTurn(ctx context.Context, text string) (string, error)
}

// InterviewerClient starts a remote interview: it sends the opening
// multimodal message under the session's system instruction and returns a
// live session seeded with that first exchange.
type InterviewerClient interface {
	StartInterview(ctx context.Context, setup *models.JobSetup) (ModelSession, string, error)
}

type geminiClient struct {
	client    *genai.Client
	modelName string
	prompts   *PromptBuilder
}

func NewGeminiClient(apiKey, modelName string) (InterviewerClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:    client,
		modelName: modelName,
		prompts:   NewPromptBuilder(),
	}, nil
}

// StartInterview implements InterviewerClient.
func (g *geminiClient) StartInterview(ctx context.Context, setup *models.JobSetup) (ModelSession, string, error) {
	if setup.Attachment == nil || len(setup.Attachment.Data) == 0 {
		return nil, "", fmt.Errorf("resume attachment is required")
	}

	systemInstruction := g.prompts.BuildSystemInstruction(setup.Language, setup.Title)
	initialText := g.prompts.BuildInitialMessage(setup.Language, setup.Responsibilities, setup.Requirements)

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	initialUserMessage := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(initialText),
		genai.NewPartFromBytes(setup.Attachment.Data, setup.Attachment.MimeType),
	}, genai.RoleUser)

	// The first message carries inline binary, so it goes through
	// GenerateContent; the chat is created afterwards, seeded with the
	// first exchange.
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, []*genai.Content{initialUserMessage}, config)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start interview: %w", err)
	}

	firstMessage := resp.Text()
	if firstMessage == "" || len(resp.Candidates) == 0 {
		return nil, "", ErrEmptyModelReply
	}

	// The reply must have a structured form to seed the chat history with.
	// Text without one would produce a session whose remote history is
	// missing its own first turn, so it is rejected here.
	firstModelMessage := resp.Candidates[0].Content
	if firstModelMessage == nil {
		return nil, "", fmt.Errorf("%w: reply has no structured content", ErrEmptyModelReply)
	}

	chat, err := g.client.Chats.Create(ctx, g.modelName, config, []*genai.Content{
		initialUserMessage,
		firstModelMessage,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create chat session: %w", err)
	}

	return &geminiSession{chat: chat}, firstMessage, nil
}

type geminiSession struct {
	chat *genai.Chat
}

// SendTurn implements ModelSession.
func (s *geminiSession) SendTurn(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", ErrEmptyModelReply
	}

	return reply, nil
}
