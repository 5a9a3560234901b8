package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gotd/td/session"

	"github.com/rayjaywolf/telegram-userbot/internal/audit"
	"github.com/rayjaywolf/telegram-userbot/internal/config"
)

// EnvSessionStorage persists the Telegram session as a base64 blob in
// the .env configuration file. The stored value is compared on every
// store and the file is rewritten only when the client issued a changed
// session, so a steady run writes at most once.
type EnvSessionStorage struct {
	mu      sync.Mutex
	path    string
	current string
	audit   *audit.Log
	log     *slog.Logger
}

// NewEnvSessionStorage builds storage seeded with the session string
// loaded at startup (which may be empty for a first run).
func NewEnvSessionStorage(cfg *config.Config, auditLog *audit.Log, log *slog.Logger) *EnvSessionStorage {
	return &EnvSessionStorage{
		path:    cfg.Path,
		current: cfg.StringSession,
		audit:   auditLog,
		log:     log.With("component", "session"),
	}
}

// LoadSession implements session.Storage.
func (s *EnvSessionStorage) LoadSession(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil, session.ErrNotFound
	}
	data, err := base64.StdEncoding.DecodeString(s.current)
	if err != nil {
		return nil, fmt.Errorf("corrupt stored session: %w", err)
	}
	return data, nil
}

// StoreSession implements session.Storage. A write failure degrades to
// a logged warning; losing the session update must not tear down the
// connection it belongs to.
func (s *EnvSessionStorage) StoreSession(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded := base64.StdEncoding.EncodeToString(data)
	if encoded == s.current {
		return nil
	}

	if err := config.UpsertKey(s.path, config.SessionKey, encoded); err != nil {
		s.log.Error("failed to persist session", "path", s.path, "error", err)
		return nil
	}
	s.current = encoded
	s.log.Info("session credential updated", "path", s.path)
	s.audit.Append("SESSION UPDATED")
	return nil
}
