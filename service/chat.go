package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/phamhoang/duocsi-chat/domain"
)

// MaxMessageLength is the upper bound on user message length, in characters.
const MaxMessageLength = 500

// HandleUserMessage runs one chat turn. On success exactly two messages were
// appended to the session: the user message, then the assistant reply. On
// generation failure the user message stays recorded and the turn fails with
// domain.ErrGenerationFailed; the caller may resubmit, nothing is retried
// here.
func (s *Service) HandleUserMessage(ctx context.Context, sessionID, rawText string) (*domain.ChatTurn, error) {
	text := strings.TrimSpace(rawText)

	if err := validateTurnInput(sessionID, text); err != nil {
		return nil, err
	}

	if s.policyEngine != nil {
		decision, reason, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
			"session_id": sessionID,
			"message":    text,
		})
		if err != nil {
			log.Printf("ERROR: policy evaluation failed: %v", err)
			return nil, fmt.Errorf("policy evaluation: %w", err)
		}
		if decision == "block" {
			log.Printf("WARN: message blocked by policy (session=%s, reason=%s)", sessionID, reason)
			return nil, domain.ErrMessageBlocked
		}
	}

	lock := s.turnLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	// The user message must be durably recorded before the model is called;
	// it is never lost even if generation fails below.
	userMsg, err := s.store.AppendMessage(ctx, sessionID, domain.RoleUser, text)
	if err != nil {
		log.Printf("ERROR: failed to append user message: %v", err)
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.config.LLMTimeout)
	defer cancel()

	reply, err := s.llmClient.Generate(genCtx, text, s.genConfig)
	if err != nil {
		// Single attempt per turn; a timeout is handled like any other
		// generation failure. Internals stay out of the returned error.
		log.Printf("ERROR: generation failed (session=%s): %v", sessionID, err)
		return nil, domain.ErrGenerationFailed
	}

	assistantMsg, err := s.store.AppendMessage(ctx, sessionID, domain.RoleAssistant, reply)
	if err != nil {
		log.Printf("ERROR: failed to append assistant message: %v", err)
		return nil, err
	}

	return &domain.ChatTurn{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// GetHistory returns the most recent messages of a session in ascending
// order; an unknown session yields an empty slice.
func (s *Service) GetHistory(ctx context.Context, sessionID string) ([]domain.Message, error) {
	return s.store.GetRecentMessages(ctx, sessionID, s.config.HistoryLimit)
}

func validateTurnInput(sessionID, text string) error {
	var fields []domain.FieldError

	if sessionID == "" {
		fields = append(fields, domain.FieldError{Field: "sessionId", Reason: "must not be empty"})
	}
	if text == "" {
		fields = append(fields, domain.FieldError{Field: "message", Reason: "must not be empty"})
	} else if utf8.RuneCountInString(text) > MaxMessageLength {
		fields = append(fields, domain.FieldError{
			Field:  "message",
			Reason: fmt.Sprintf("must be at most %d characters", MaxMessageLength),
		})
	}

	if len(fields) > 0 {
		return &domain.InvalidInputError{Fields: fields}
	}
	return nil
}
