package credstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// Key suffixes under the per-profile namespace.
const (
	keyToken         = "token"
	keyRefreshToken  = "refreshToken"
	keyGuestCart     = "guestCart"
	keyPendingAction = "pendingAction"
)

// RedisStore implements Store on Redis under a per-profile key namespace,
// so several client processes sharing a profile observe the same state.
type RedisStore struct {
	client  *redis.Client
	profile string
}

// NewRedisStore creates a Redis-backed credential store for the given profile.
func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	return &RedisStore{
		client:  client,
		profile: profile,
	}
}

func (s *RedisStore) key(suffix string) string {
	return fmt.Sprintf("storefront:%s:%s", s.profile, suffix)
}

// Session returns the stored token pair, or a zero Session if none.
func (s *RedisStore) Session(ctx context.Context) (domain.Session, error) {
	vals, err := s.client.MGet(ctx, s.key(keyToken), s.key(keyRefreshToken)).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.Session
	if v, ok := vals[0].(string); ok {
		session.AccessToken = v
	}
	if v, ok := vals[1].(string); ok {
		session.RefreshToken = v
	}
	return session, nil
}

// SetSession stores both tokens in a single write.
func (s *RedisStore) SetSession(ctx context.Context, session domain.Session) error {
	err := s.client.MSet(ctx,
		s.key(keyToken), session.AccessToken,
		s.key(keyRefreshToken), session.RefreshToken,
	).Err()
	if err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// ClearSession removes both tokens, leaving the guest cart untouched.
func (s *RedisStore) ClearSession(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(keyToken), s.key(keyRefreshToken)).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

// GuestCart returns the persisted guest cart list, empty if none.
func (s *RedisStore) GuestCart(ctx context.Context) (domain.GuestCart, error) {
	data, err := s.client.Get(ctx, s.key(keyGuestCart)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get guest cart: %w", err)
	}

	var cart domain.GuestCart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal guest cart: %w", err)
	}
	return cart, nil
}

// SetGuestCart replaces the persisted guest cart in a single write.
func (s *RedisStore) SetGuestCart(ctx context.Context, cart domain.GuestCart) error {
	if cart == nil {
		cart = domain.GuestCart{}
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal guest cart: %w", err)
	}

	if err := s.client.Set(ctx, s.key(keyGuestCart), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set guest cart: %w", err)
	}
	return nil
}

// PendingAction returns the parked action, if any.
func (s *RedisStore) PendingAction(ctx context.Context) (domain.PendingAction, bool, error) {
	data, err := s.client.Get(ctx, s.key(keyPendingAction)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.PendingAction{}, false, nil
		}
		return domain.PendingAction{}, false, fmt.Errorf("redis get pending action: %w", err)
	}

	var action domain.PendingAction
	if err := json.Unmarshal(data, &action); err != nil {
		return domain.PendingAction{}, false, fmt.Errorf("unmarshal pending action: %w", err)
	}
	return action, true, nil
}

// SetPendingAction parks an action to resume after login.
func (s *RedisStore) SetPendingAction(ctx context.Context, a domain.PendingAction) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal pending action: %w", err)
	}

	if err := s.client.Set(ctx, s.key(keyPendingAction), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set pending action: %w", err)
	}
	return nil
}

// ClearPendingAction removes the parked action.
func (s *RedisStore) ClearPendingAction(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(keyPendingAction)).Err(); err != nil {
		return fmt.Errorf("redis clear pending action: %w", err)
	}
	return nil
}
