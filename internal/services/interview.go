package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"alfredoptarigan/interview-simulator/internal/models"
)

var (
	// ErrBusy rejects a call issued while another exchange is in flight.
	ErrBusy = errors.New("an exchange is already in flight")

	// ErrNoSession rejects a send before an interview has been started.
	ErrNoSession = errors.New("no active interview session")

	// ErrSetupIncomplete blocks a start with missing required fields. The
	// remote model is never contacted in this case.
	ErrSetupIncomplete = errors.New("interview setup is incomplete")
)

// InterviewService owns the state of one interview attempt: the ordered
// turn history, the live model session and the busy flag. All mutations of
// that state funnel through here, which is what keeps the single-flight and
// ordering guarantees intact.
type InterviewService interface {
	// Start begins a new interview, discarding any previous one. On
	// remote failure the returned turn is a synthetic interviewer error
	// turn standing in for the interview, and no session is live.
	Start(ctx context.Context, setup *models.JobSetup) (*models.ConversationTurn, error)

	// Send commits text as a candidate turn, forwards it to the live
	// session and appends the interviewer's reply. The candidate turn is
	// committed before the remote call resolves; exactly one of reply
	// turn or error turn follows it.
	Send(ctx context.Context, text string) ([]models.ConversationTurn, error)

	// AutoReply asks the model to answer its own last question in the
	// candidate's voice, then feeds that answer through Send. A silent
	// no-op when there is no session, no interviewer turn yet, or an
	// exchange in flight.
	AutoReply(ctx context.Context) ([]models.ConversationTurn, error)

	// History returns a snapshot of the turn list, the busy flag and the
	// last user-visible error, if any.
	History() ([]models.ConversationTurn, bool, string)
}

type interviewService struct {
	interviewer InterviewerClient
	prompts     *PromptBuilder

	// busy is the single-flight guard. The HTTP server is concurrent
	// even though the conversation model is sequential, so the flag is a
	// compare-and-swap rather than a convention.
	busy atomic.Bool

	mu        sync.Mutex // guards the fields below
	history   []models.ConversationTurn
	session   ModelSession
	language  models.Language
	lastError string
}

func NewInterviewService(interviewer InterviewerClient) InterviewService {
	return &interviewService{
		interviewer: interviewer,
		prompts:     NewPromptBuilder(),
		language:    models.LanguageEN,
	}
}

// Start implements InterviewService.
func (s *interviewService) Start(ctx context.Context, setup *models.JobSetup) (*models.ConversationTurn, error) {
	// Validation happens before anything else so that an incomplete
	// setup never reaches the model and never disturbs a running
	// interview.
	if err := setup.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSetupIncomplete, err)
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	s.history = nil
	s.session = nil
	s.language = setup.Language
	s.lastError = ""
	s.mu.Unlock()

	log.Printf("🎤 Starting interview for %q (%s)\n", setup.Title, setup.Language)

	session, firstMessage, err := s.interviewer.StartInterview(ctx, setup)
	if err != nil {
		log.Printf("❌ Failed to start interview: %v\n", err)
		turn := s.appendTurn(models.RoleInterviewer, s.prompts.StartErrorText(setup.Language, err))
		s.mu.Lock()
		s.lastError = turn.Text
		s.mu.Unlock()
		return &turn, err
	}

	turn := s.appendTurn(models.RoleInterviewer, firstMessage)

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return &turn, nil
}

// Send implements InterviewService.
func (s *interviewService) Send(ctx context.Context, text string) ([]models.ConversationTurn, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()
	if session == nil {
		return nil, ErrNoSession
	}

	return s.exchange(ctx, session, text), nil
}

// AutoReply implements InterviewService.
func (s *interviewService) AutoReply(ctx context.Context) ([]models.ConversationTurn, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, nil
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	session := s.session
	language := s.language
	lastQuestion := ""
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Role == models.RoleInterviewer {
			lastQuestion = s.history[i].Text
			break
		}
	}
	s.mu.Unlock()

	if session == nil || lastQuestion == "" {
		return nil, nil
	}

	// First call: generate the answer behind the scenes. The wrapper turn
	// itself never appears in the visible history.
	wrapper := s.prompts.BuildAutoReplyPrompt(language, lastQuestion)
	answer, err := session.SendTurn(ctx, wrapper)
	if err != nil {
		log.Printf("❌ Auto-reply generation failed: %v\n", err)
		turn := s.appendTurn(models.RoleInterviewer, s.prompts.AutoReplyErrorText(language, err))
		s.mu.Lock()
		s.lastError = turn.Text
		s.mu.Unlock()
		return []models.ConversationTurn{turn}, nil
	}

	// Second call: the generated answer goes through the ordinary
	// exchange as if the user had typed it.
	return s.exchange(ctx, session, answer), nil
}

// History implements InterviewService.
func (s *interviewService) History() ([]models.ConversationTurn, bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]models.ConversationTurn, len(s.history))
	copy(turns, s.history)
	return turns, s.busy.Load(), s.lastError
}

// exchange runs one request-response pair against the session. The caller
// must hold the busy flag. The candidate turn is committed before the
// remote call so it is always visible ahead of the answering turn.
func (s *interviewService) exchange(ctx context.Context, session ModelSession, text string) []models.ConversationTurn {
	candidate := s.appendTurn(models.RoleCandidate, text)

	s.mu.Lock()
	language := s.language
	s.lastError = ""
	s.mu.Unlock()

	reply, err := session.SendTurn(ctx, text)
	if err != nil {
		log.Printf("❌ Exchange failed: %v\n", err)
		errTurn := s.appendTurn(models.RoleInterviewer, s.prompts.ExchangeErrorText(language, err))
		s.mu.Lock()
		s.lastError = errTurn.Text
		s.mu.Unlock()
		return []models.ConversationTurn{candidate, errTurn}
	}

	interviewer := s.appendTurn(models.RoleInterviewer, reply)
	return []models.ConversationTurn{candidate, interviewer}
}

func (s *interviewService) appendTurn(role models.TurnRole, text string) models.ConversationTurn {
	turn := models.NewTurn(role, text)

	s.mu.Lock()
	s.history = append(s.history, turn)
	s.mu.Unlock()

	return turn
}
