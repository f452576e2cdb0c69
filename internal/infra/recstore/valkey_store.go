package recstore

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/luvit/moodfit/internal/domain/recommend"
)

// ValkeyStore keeps the single recommendation slot in a Valkey-compatible
// database so the last result survives process restarts.
type ValkeyStore struct {
	client valkey.Client
	key    string
	ttl    time.Duration
}

// NewValkeyStore constructs the store. ttl zero keeps the slot forever.
func NewValkeyStore(client valkey.Client, key string, ttl time.Duration) *ValkeyStore {
	if key == "" {
		key = "recommendation:latest"
	}
	return &ValkeyStore{client: client, key: key, ttl: ttl}
}

// SaveEntry implements recommend.CacheStore, most-recent-wins.
func (s *ValkeyStore) SaveEntry(ctx context.Context, payload []byte) error {
	builder := s.client.B().Set().Key(s.key).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// LoadEntry implements recommend.CacheStore.
func (s *ValkeyStore) LoadEntry(ctx context.Context) ([]byte, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.key).Build())
	payload, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(payload), true, nil
}

// DeleteEntry implements recommend.CacheStore.
func (s *ValkeyStore) DeleteEntry(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key).Build()).Error()
}

var _ recommend.CacheStore = (*ValkeyStore)(nil)
