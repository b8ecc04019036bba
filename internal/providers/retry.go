package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"game-data-service/internal/domain"
	"game-data-service/internal/logging"
	"game-data-service/internal/normalize"
)

const (
	defaultRetryAttempts   = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingAdapter wraps an Adapter with exponential backoff on transient
// transport failures. Rate limits, missing credentials, and not-found results
// are final: retrying them only burns quota.
type retryingAdapter struct {
	next            Adapter
	logger          *slog.Logger
	maxAttempts     uint64
	initialInterval time.Duration
}

// NewRetryingAdapter wraps the given adapter with retries. If maxAttempts or
// initialInterval are <= 0, defaults are used.
func NewRetryingAdapter(next Adapter, logger *slog.Logger, maxAttempts int, initialInterval time.Duration) Adapter {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initialInterval <= 0 {
		initialInterval = defaultInitialInterval
	}
	return &retryingAdapter{
		next:            next,
		logger:          logger,
		maxAttempts:     uint64(maxAttempts),
		initialInterval: initialInterval,
	}
}

func (r *retryingAdapter) Name() domain.Provider { return r.next.Name() }

func (r *retryingAdapter) FieldMap() normalize.FieldMap { return r.next.FieldMap() }

func (r *retryingAdapter) ExactMatchThreshold() float64 { return r.next.ExactMatchThreshold() }

func (r *retryingAdapter) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	var candidates []domain.SearchCandidate
	err := r.do(ctx, "search", func() error {
		var innerErr error
		candidates, innerErr = r.next.Search(ctx, query)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *retryingAdapter) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	var record domain.RawRecord
	err := r.do(ctx, "details", func() error {
		var innerErr error
		record, innerErr = r.next.FetchDetails(ctx, id)
		return innerErr
	})
	if err != nil {
		return domain.RawRecord{}, err
	}
	return record, nil
}

func (r *retryingAdapter) do(ctx context.Context, op string, call func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(r.initialInterval),
		), r.maxAttempts-1),
		ctx,
	)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := call()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		logger := logging.FromContext(ctx, r.logger)
		logging.Warn(logger, "provider call retry",
			slog.String(logging.FieldProvider, string(r.next.Name())),
			slog.String("op", op),
			slog.Int("attempt", attempt),
			"error", err,
		)
		return err
	}, policy)
}

func retryable(err error) bool {
	if _, isRateLimit := AsRateLimitError(err); isRateLimit {
		return false
	}
	if _, isCreds := AsCredentialsError(err); isCreds {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
