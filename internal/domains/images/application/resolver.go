package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/domain"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/ports"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

// DefaultProbeTimeout bounds an existence probe when none is configured.
const DefaultProbeTimeout = 3 * time.Second

// ErrProberNotConfigured is reported when the feature is on but no storage client was wired.
var ErrProberNotConfigured = errors.New("object prober not configured")

// Config holds the resolver's process-wide settings.
type Config struct {
	Enabled      bool
	BaseURL      string
	ProbeTimeout time.Duration
}

// Resolver maps legacy image references onto bucket URLs after verifying the
// object exists.
type Resolver struct {
	enabled bool
	baseURL string
	timeout time.Duration
	prober  ports.ObjectProber
}

// NewResolver creates a resolver. prober may be nil when the feature is disabled.
func NewResolver(cfg Config, prober ports.ObjectProber) *Resolver {
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Resolver{
		enabled: cfg.Enabled,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout: timeout,
		prober:  prober,
	}
}

// Resolve returns a tagged resolution for ref. It never panics and makes no
// network call unless the feature is enabled and ref matches the pattern.
func (r *Resolver) Resolve(ctx context.Context, ref string) (res domain.Resolution) {
	if r == nil || !r.enabled {
		return domain.Resolution{Status: domain.StatusDisabled}
	}
	parsed, ok := domain.ParseReference(ref)
	if !ok {
		return domain.Resolution{Status: domain.StatusUnmatched}
	}
	key := parsed.Key()
	if r.baseURL == "" {
		return domain.Resolution{Status: domain.StatusProbeFailed, Key: key, Err: apierrors.NewConfigurationError("IMAGE_BASE_URL")}
	}
	if r.prober == nil {
		return domain.Resolution{Status: domain.StatusProbeFailed, Key: key, Err: ErrProberNotConfigured}
	}

	defer func() {
		if p := recover(); p != nil {
			res = domain.Resolution{Status: domain.StatusProbeFailed, Key: key, Err: fmt.Errorf("object probe panicked: %v", p)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	exists, err := r.prober.ObjectExists(ctx, key.String())
	switch {
	case err != nil:
		return domain.Resolution{Status: domain.StatusProbeFailed, Key: key, Err: err}
	case !exists:
		return domain.Resolution{Status: domain.StatusNotFound, Key: key}
	default:
		return domain.Resolution{Status: domain.StatusResolved, Key: key, URL: r.baseURL + "/" + key.String()}
	}
}

// ResolveURL applies the availability-first policy: any unresolved reference
// is returned unchanged.
func ResolveURL(ctx context.Context, resolver ports.Resolver, ref string) string {
	if resolver == nil {
		return ref
	}
	return resolver.Resolve(ctx, ref).URLOr(ref)
}

var _ ports.Resolver = (*Resolver)(nil)
