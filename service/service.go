// Package service coordinates chat turns end-to-end.
package service

import (
	"sync"

	"github.com/phamhoang/duocsi-chat/config"
	"github.com/phamhoang/duocsi-chat/llm"
	"github.com/phamhoang/duocsi-chat/policy"
	"github.com/phamhoang/duocsi-chat/store"
)

// Service orchestrates one chat turn: validate, append the user message,
// call the model once, append the reply. It owns the request lifecycle but
// never mutates a message after append.
type Service struct {
	store        store.Store
	llmClient    llm.Client
	policyEngine *policy.Engine
	config       *config.Config
	genConfig    llm.GenerationConfig

	mu    sync.Mutex
	turns map[string]*sync.Mutex
}

// New creates a service. policyEngine may be nil, in which case every
// message is allowed.
func New(st store.Store, llmClient llm.Client, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        st,
		llmClient:    llmClient,
		policyEngine: policyEngine,
		config:       cfg,
		genConfig: llm.GenerationConfig{
			SystemInstruction: llm.SystemPrompt,
			Temperature:       float32(cfg.Temperature),
			MaxOutputTokens:   int32(cfg.MaxOutputTokens),
		},
		turns: make(map[string]*sync.Mutex),
	}
}

// turnLock returns the per-session lock, creating it on first use. Holding
// it for the whole turn keeps each user/assistant pair adjacent in the log;
// turns on different sessions never block one another.
func (s *Service) turnLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.turns[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.turns[sessionID] = l
	}
	return l
}
