package gatewayserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

var serviceErrors = apierrors.NewChainedResponder(idempotencyConflictMapper)

// respondFailure writes the gateway failure envelope.
func respondFailure(c *gin.Context, status int, message string) {
	apierrors.Respond(c, status, message)
}

func respondBadRequest(c *gin.Context, message string) {
	serviceErrors.BadRequest(c, message)
}

// respondServiceError maps service errors through the shared responder.
func respondServiceError(c *gin.Context, err error) {
	serviceErrors.RespondError(c, err)
}

func idempotencyConflictMapper(err error) (int, string, bool) {
	if errors.Is(err, ordersports.ErrIdempotencyConflict) || errors.Is(err, ordersports.ErrIdempotencyInProgress) {
		return http.StatusConflict, err.Error(), true
	}
	return 0, "", false
}
