package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionManager implements the session lifecycle over a TTL transport store
// and a persisted audit repository. The two writes in Create are not
// transactional: a failed audit insert after a successful transport write is
// surfaced to the caller even though the session already resolves.
type SessionManager struct {
	store ports.SessionStore
	repo  ports.SessionRepository
	ttl   time.Duration
}

func NewSessionManager(store ports.SessionStore, repo ports.SessionRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{store: store, repo: repo, ttl: ttl}
}

func (m *SessionManager) Create(ctx context.Context, userID, role string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	sid, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	if err := m.store.Put(ctx, sid, domain.SessionData{UserID: userID, Role: role}, m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	record := &domain.Session{
		UserID:    userID,
		SessionID: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	if err := m.repo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("record session: %w", err)
	}

	return sid, nil
}

func (m *SessionManager) Validate(ctx context.Context, sid string) (*domain.SessionData, error) {
	if sid == "" {
		return nil, domain.ErrNoSession
	}

	data, err := m.store.Get(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil || data.UserID == "" {
		return nil, domain.ErrNoSession
	}
	return data, nil
}

func (m *SessionManager) Destroy(ctx context.Context, sid string) error {
	data, err := m.Validate(ctx, sid)
	if err != nil {
		return err
	}

	if err := m.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	if err := m.repo.DeleteByUserID(ctx, data.UserID); err != nil {
		return fmt.Errorf("remove session records: %w", err)
	}
	return nil
}

// newSessionID returns a 128-bit random identifier in hex. The cookie id is
// independent of the persisted audit session_id.
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
