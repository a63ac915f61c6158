package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

// DefaultKeyPrefix namespaces idempotency keys in a shared Redis.
const DefaultKeyPrefix = "orders:idempotency:"

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// IdempotencyStore keeps idempotency records in Redis so several gateway
// instances share them. Records expire after the configured TTL.
type IdempotencyStore struct {
	client    goredis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
}

// NewIdempotencyStore connects and pings Redis.
func NewIdempotencyStore(ctx context.Context, cfg Config) (*IdempotencyStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewIdempotencyStoreWithClient(client, "", cfg.TTL), nil
}

// NewIdempotencyStoreWithClient wraps an existing client. A zero ttl keeps
// records until evicted.
func NewIdempotencyStoreWithClient(client goredis.UniversalClient, keyPrefix string, ttl time.Duration) *IdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &IdempotencyStore{client: client, keyPrefix: keyPrefix, ttl: ttl, now: time.Now}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	return decodeRecord(raw)
}

// Reserve claims the key with SETNX. The pending record expires after the
// lease, which is how a crashed holder's claim goes stale.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	now := s.now().UTC()
	raw, err := encodeRecord(ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Pending:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.client.SetNX(ctx, s.keyPrefix+key, raw, ports.IdempotencyLease).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if created {
		return nil, nil
	}

	existing, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// expired between SETNX and GET
		return s.Reserve(ctx, key, requestHash)
	}
	return existing, nil
}

// Complete overwrites the reservation with the delivered record and the store TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, record ports.IdempotencyRecord) error {
	now := s.now().UTC()
	record.Pending = false
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	raw, err := encodeRecord(record)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.keyPrefix+record.Key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}
	return nil
}

var releasePending = goredis.NewScript(`
local v = redis.call('GET', KEYS[1])
if v and cjson.decode(v).pending then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

// Release deletes the key only while it still holds a pending reservation.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := releasePending.Run(ctx, s.client, []string{s.keyPrefix + key}).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *IdempotencyStore) Close() error {
	return s.client.Close()
}

type storedRecord struct {
	Key         string          `json:"key"`
	RequestHash string          `json:"requestHash"`
	Pending     bool            `json:"pending"`
	Sent        json.RawMessage `json:"sent,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func encodeRecord(rec ports.IdempotencyRecord) ([]byte, error) {
	return json.Marshal(storedRecord{
		Key:         rec.Key,
		RequestHash: rec.RequestHash,
		Pending:     rec.Pending,
		Sent:        rec.Sent,
		Result:      rec.Result,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	})
}

func decodeRecord(raw []byte) (*ports.IdempotencyRecord, error) {
	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("corrupt idempotency record: %w", err)
	}
	return &ports.IdempotencyRecord{
		Key:         stored.Key,
		RequestHash: stored.RequestHash,
		Pending:     stored.Pending,
		Sent:        stored.Sent,
		Result:      stored.Result,
		CreatedAt:   stored.CreatedAt,
		UpdatedAt:   stored.UpdatedAt,
	}, nil
}
