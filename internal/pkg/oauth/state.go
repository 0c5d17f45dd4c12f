package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	stateKeyPrefix = "auth:state:"
	stateTTL       = 10 * time.Minute
)

var ErrInvalidState = errors.New("授权状态无效或已过期")

// StateStore 登录回调的一次性 state 凭据，防 CSRF 与重放
type StateStore struct {
	rdb *redis.Client
}

func NewStateStore(rdb *redis.Client) *StateStore {
	return &StateStore{rdb: rdb}
}

// Issue 签发 state 并记录回跳地址
func (s *StateStore) Issue(ctx context.Context, redirectURI string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, stateKeyPrefix+state, redirectURI, stateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}
	return state, nil
}

// Consume 校验并销毁 state，返回签发时记录的回跳地址
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrInvalidState
	}

	// GETDEL 保证一次性使用
	redirectURI, err := s.rdb.GetDel(ctx, stateKeyPrefix+state).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrInvalidState
		}
		return "", fmt.Errorf("failed to consume state: %w", err)
	}
	return redirectURI, nil
}
