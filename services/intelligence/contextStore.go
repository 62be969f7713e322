// File: services/intelligence/contextStore.go
package ai

import (
	"context"

	"flowmaster/models"
	"flowmaster/utils"
)

// SessionStore keeps chat history per tenant and sender. Entries expire with the cache TTL.
type SessionStore struct {
	cache utils.TTLCache
}

func NewSessionStore(cache utils.TTLCache) *SessionStore {
	return &SessionStore{cache: cache}
}

func sessionKey(tenantID, senderID string) string {
	return tenantID + ":" + senderID
}

func (s *SessionStore) Get(ctx context.Context, tenantID, senderID string) (*models.AgentSession, error) {
	var sess models.AgentSession
	ok, err := s.cache.Get(ctx, sessionKey(tenantID, senderID), &sess)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &models.AgentSession{}, nil
	}
	return &sess, nil
}

func (s *SessionStore) Set(ctx context.Context, tenantID, senderID string, sess *models.AgentSession) error {
	return s.cache.Set(ctx, sessionKey(tenantID, senderID), sess)
}
