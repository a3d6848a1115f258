package session

import (
	"context"
	"errors"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/repository"
)

// ErrForbidden 会话属于其他用户
var ErrForbidden = errors.New("session belongs to another user")

// CachingStore 带缓存的会话存储
// 会话读走缓存，所有写先落库再失效缓存，消息不缓存直接透传
type CachingStore struct {
	inner repository.ChatStore
	cache *Cache
}

// NewCachingStore 包装一个 ChatStore，读路径加会话缓存
func NewCachingStore(inner repository.ChatStore, cache *Cache) *CachingStore {
	return &CachingStore{inner: inner, cache: cache}
}

var _ repository.ChatStore = (*CachingStore)(nil)

// CreateSession 建会话并预热缓存
func (s *CachingStore) CreateSession(sess *model.ChatSession) error {
	if err := s.inner.CreateSession(sess); err != nil {
		return err
	}
	s.cache.Put(context.Background(), sess)
	return nil
}

// GetSessionByID 先查缓存再查库
func (s *CachingStore) GetSessionByID(id string) (*model.ChatSession, error) {
	ctx := context.Background()
	if sess := s.cache.Get(ctx, id); sess != nil {
		return sess, nil
	}
	sess, err := s.inner.GetSessionByID(id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, sess)
	return sess, nil
}

// GetSessionForUser 先查缓存再查库，归属校验在两条路径上都做
func (s *CachingStore) GetSessionForUser(id, userID string) (*model.ChatSession, error) {
	ctx := context.Background()
	if sess := s.cache.Get(ctx, id); sess != nil {
		if sess.UserID != userID {
			return nil, ErrForbidden
		}
		return sess, nil
	}
	sess, err := s.inner.GetSessionForUser(id, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, sess)
	return sess, nil
}

// ListSessions 列表不走缓存
func (s *CachingStore) ListSessions(userID string, offset, limit int) ([]*model.ChatSession, error) {
	return s.inner.ListSessions(userID, offset, limit)
}

// UpdateSession 先落库再失效
func (s *CachingStore) UpdateSession(sess *model.ChatSession) error {
	if err := s.inner.UpdateSession(sess); err != nil {
		return err
	}
	s.cache.Invalidate(context.Background(), sess.ID)
	return nil
}

// UpdateSessionContext 先落库再失效
func (s *CachingStore) UpdateSessionContext(sessionID, userContext string) error {
	if err := s.inner.UpdateSessionContext(sessionID, userContext); err != nil {
		return err
	}
	s.cache.Invalidate(context.Background(), sessionID)
	return nil
}

// UpdateSessionPlan 先落库再失效
func (s *CachingStore) UpdateSessionPlan(sessionID string, plan model.Plan) error {
	if err := s.inner.UpdateSessionPlan(sessionID, plan); err != nil {
		return err
	}
	s.cache.Invalidate(context.Background(), sessionID)
	return nil
}

// CreateMessage 消息直接透传
func (s *CachingStore) CreateMessage(msg *model.ChatMessage) error {
	return s.inner.CreateMessage(msg)
}

// GetMessagesBySessionID 消息直接透传
func (s *CachingStore) GetMessagesBySessionID(sessionID string) ([]*model.ChatMessage, error) {
	return s.inner.GetMessagesBySessionID(sessionID)
}

// GetRecentMessagesBySession 消息直接透传
func (s *CachingStore) GetRecentMessagesBySession(sessionID string, limit int) ([]*model.ChatMessage, error) {
	return s.inner.GetRecentMessagesBySession(sessionID, limit)
}
