package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog_analyzer/internal/core"
	"blog_analyzer/internal/storage"
	"blog_analyzer/pkg"
	"blog_analyzer/src/logger"
)

// ErrTopicRequired is returned when a search has no topic
var ErrTopicRequired = errors.New("topic query parameter is required")

// SessionManager creates, resumes and inspects workflow sessions
type SessionManager interface {
	Create(ctx context.Context) (*core.Snapshot, error)
	Resume(ctx context.Context, sessionID string, input string) (*core.Snapshot, error)
	Get(ctx context.Context, sessionID string) (*core.Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// AnalysisService maps client requests onto sessions and persists completed analyses
type AnalysisService struct {
	sessions SessionManager
	repo     storage.AnalysisRepository
}

// NewAnalysisService creates the service
func NewAnalysisService(sessions SessionManager, repo storage.AnalysisRepository) *AnalysisService {
	return &AnalysisService{sessions: sessions, repo: repo}
}

// Analyze creates a session when no id is given, otherwise resumes it with the user input.
// A session that completes during this call is persisted once before returning.
func (s *AnalysisService) Analyze(ctx context.Context, req pkg.AnalyzeRequest) (*pkg.AnalyzeResponse, error) {
	if req.SessionID == nil || *req.SessionID == "" {
		snapshot, err := s.sessions.Create(ctx)
		if err != nil {
			return nil, err
		}
		return awaitingResponse(snapshot, false), nil
	}

	input := ""
	if req.UserInput != nil {
		input = *req.UserInput
	}

	snapshot, err := s.sessions.Resume(ctx, *req.SessionID, input)
	if err != nil {
		return nil, err
	}

	if !core.IsComplete(snapshot) {
		if snapshot.Step == core.StepTerminal {
			return nil, fmt.Errorf("session ended without fields: %s", strings.Join(core.MissingFields(snapshot.Fields), ", "))
		}
		return awaitingResponse(snapshot, true), nil
	}

	if err := s.repo.Insert(ctx, snapshot.Record()); err != nil {
		log := logger.With("service")
		log.Error().Err(err).Str("session_id", snapshot.SessionID).Msg("❌ Failed to persist analysis")
	}

	return &pkg.AnalyzeResponse{
		SessionID: snapshot.SessionID,
		Status:    pkg.StatusDone,
		AIMessage: snapshot.Result(),
	}, nil
}

// awaitingResponse reports a suspended session. A resumed session also echoes
// its pending question in ai_message.
func awaitingResponse(snapshot *core.Snapshot, resumed bool) *pkg.AnalyzeResponse {
	step := string(snapshot.Step)
	resp := &pkg.AnalyzeResponse{
		SessionID:    snapshot.SessionID,
		Status:       pkg.StatusAwaitingUserInput,
		AwaitingNode: &step,
		Message:      snapshot.PendingMessage,
	}
	if resumed {
		resp.AIMessage = &pkg.PendingReply{Response: snapshot.PendingMessage}
	}
	return resp
}

// Search finds stored analyses with a topic or keyword equal to topic, ignoring case
func (s *AnalysisService) Search(ctx context.Context, topic string) (*pkg.SearchResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrTopicRequired
	}

	results, err := s.repo.SearchByTopicOrKeyword(ctx, topic)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &pkg.SearchResponse{
			Status:  pkg.SearchStatusNotFound,
			Message: fmt.Sprintf("No analyses found for '%s'", topic),
		}, nil
	}

	count := len(results)
	return &pkg.SearchResponse{
		Status:  pkg.SearchStatusSuccess,
		Count:   &count,
		Results: results,
	}, nil
}

// Session returns the current view of a session
func (s *AnalysisService) Session(ctx context.Context, sessionID string) (*pkg.SessionView, error) {
	snapshot, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := snapshot.View()
	return &view, nil
}

// DeleteSession removes a session
func (s *AnalysisService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
