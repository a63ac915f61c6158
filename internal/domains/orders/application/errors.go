package application

import (
	"errors"
	"fmt"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

// InvalidBodyMessage is reported for pass-through bodies that are not structured JSON.
const InvalidBodyMessage = "Invalid JSON body"

// ErrSubmitterNotConfigured is returned when no distributor adapter is wired.
var ErrSubmitterNotConfigured = errors.New("order submitter not configured")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingStoreName) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidPart) ||
		errors.Is(err, domain.ErrInvalidShipFlag) ||
		errors.Is(err, domain.ErrInvalidFillFlag) {
		return fmt.Errorf("%w: %w", &apierrors.ValidationError{Detail: "invalid order record"}, err)
	}
	return err
}
