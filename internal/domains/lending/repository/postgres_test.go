package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubCache struct {
	deleted   []string
	deleteErr error
}

func (s *stubCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}

func (s *stubCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (s *stubCache) Delete(_ context.Context, keys ...string) error {
	s.deleted = append(s.deleted, keys...)
	return s.deleteErr
}

func (s *stubCache) DeletePattern(_ context.Context, _ string) error { return nil }

func (s *stubCache) Ping(_ context.Context) error { return nil }

func TestInvalidateBookCache(t *testing.T) {
	cache := &stubCache{}
	repo := &postgresRepository{cache: cache}
	bookID := uuid.New()

	repo.invalidateBookCache(context.Background(), bookID)

	assert.Equal(t, []string{"book:" + bookID.String()}, cache.deleted)
}

func TestInvalidateBookCacheToleratesFailure(t *testing.T) {
	cache := &stubCache{deleteErr: errors.New("connection refused")}
	repo := &postgresRepository{cache: cache}
	bookID := uuid.New()

	// The delete failure is logged, not returned: the loan mutation has
	// already committed and must not be reported as failed.
	repo.invalidateBookCache(context.Background(), bookID)

	assert.Len(t, cache.deleted, 1)
}
