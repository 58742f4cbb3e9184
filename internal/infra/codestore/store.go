package codestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCodeNotFound возвращается, когда код отсутствует или истек
	ErrCodeNotFound = errors.New("codestore: code not found or expired")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("codestore: store unavailable")
)

// Store хранилище одноразовых кодов подтверждения поверх Redis.
// Срок жизни кода обеспечивается TTL ключа, одноразовость атомарным
// GETDEL при проверке.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище кодов с заданным временем жизни
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Put сохраняет код для пользователя, перезаписывая предыдущий
func (s *Store) Put(ctx context.Context, userID, code string) error {
	if err := s.client.Set(ctx, s.key(userID), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Put - %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Take атомарно извлекает и удаляет код пользователя.
// Повторный вызов для того же кода вернет ErrCodeNotFound.
func (s *Store) Take(ctx context.Context, userID string) (string, error) {
	code, err := s.client.GetDel(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Take - %v", ErrStoreUnavailable, err)
	}
	return code, nil
}

// TTL возвращает настроенное время жизни кода
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) key(userID string) string {
	return "verification:code:" + userID
}
