package ports

import (
	"context"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/domain"
)

// Resolver maps image references to bucket URLs.
type Resolver interface {
	Resolve(ctx context.Context, ref string) domain.Resolution
}
