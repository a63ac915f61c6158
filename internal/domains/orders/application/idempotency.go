package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

// MaxIdempotencyKeyLength bounds client-supplied keys.
const MaxIdempotencyKeyLength = 255

// WithIdempotencyStore enables SubmitPayloadOnce replay.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// FingerprintPayload hashes the canonical form of a JSON payload so that
// whitespace and key order do not change the fingerprint. Numbers keep their
// literal text so large integers stay distinct.
func FingerprintPayload(payload json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return "", err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", errors.New("trailing data after JSON value")
	}
	canonical, err := json.Marshal(decoded)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// SubmitPayloadOnce forwards payload at most once per key. The key is
// reserved before the distributor is called, so a concurrent duplicate gets
// ports.ErrIdempotencyInProgress instead of a second order. A repeated key
// with the same payload replays the stored result; a repeated key with a
// different payload fails with ports.ErrIdempotencyConflict. Failed
// deliveries release the key so they may be retried under it.
func (s *Service) SubmitPayloadOnce(ctx context.Context, kind domain.SubmissionKind, key string, payload json.RawMessage) (*types.SubmissionResult, error) {
	key = strings.TrimSpace(key)
	if key == "" || s.idempotency == nil {
		return s.SubmitPayload(ctx, kind, payload)
	}
	if len(key) > MaxIdempotencyKeyLength {
		return nil, apierrors.NewValidationError("Idempotency-Key must be at most 255 characters")
	}
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	hash, err := FingerprintPayload(payload)
	if err != nil {
		return nil, apierrors.NewValidationError(InvalidBodyMessage)
	}

	holder, err := s.idempotency.Reserve(ctx, key, hash)
	if err != nil {
		return nil, err
	}
	if holder != nil {
		switch {
		case holder.RequestHash != hash:
			return nil, ports.ErrIdempotencyConflict
		case holder.Pending:
			return nil, ports.ErrIdempotencyInProgress
		default:
			return &types.SubmissionResult{Sent: holder.Sent, Result: holder.Result, Replayed: true}, nil
		}
	}

	result, err := s.SubmitPayload(ctx, kind, payload)
	if err != nil {
		if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to release idempotency key",
				slog.String("idempotency.key", key), slog.String("error", releaseErr.Error()))
		}
		return nil, err
	}
	err = s.idempotency.Complete(context.WithoutCancel(ctx), ports.IdempotencyRecord{
		Key:         key,
		RequestHash: hash,
		Sent:        result.Sent,
		Result:      result.Result,
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to remember idempotency key",
			slog.String("idempotency.key", key), slog.String("error", err.Error()))
	}
	return result, nil
}
