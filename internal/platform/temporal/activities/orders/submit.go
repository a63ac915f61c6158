package orders

import (
	"context"
	"encoding/json"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderstypes "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	ordersdomain "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	ordersports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

const (
	// SubmitPayloadActivityName forwards one order payload to the distributor.
	SubmitPayloadActivityName = "orders.activities.SubmitPayload"

	// Application error types carried across the workflow boundary.
	ConfigurationErrorType = "orders.ConfigurationError"
	ValidationErrorType    = "orders.ValidationError"
	SubmissionErrorType    = "orders.SubmissionError"
)

// SubmitPayloadInput is the activity argument. Payload must be a JSON object or array.
type SubmitPayloadInput struct {
	Payload  json.RawMessage
	PONumber string
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// SubmitPayload performs one submission attempt. Missing configuration and
// malformed payloads are not retried.
func (a *Activities) SubmitPayload(ctx context.Context, input SubmitPayloadInput) (*orderstypes.SubmissionResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order submit activity not initialized", "poNumber", input.PONumber)
		return nil, temporal.NewNonRetryableApplicationError("order submit activity not initialized", "orders.NotInitialized", nil)
	}
	logger.Info("SubmitPayload activity started", "poNumber", input.PONumber, "attempt", activity.GetInfo(ctx).Attempt)
	result, err := a.service.SubmitPayload(ctx, ordersdomain.KindDurable, input.Payload)
	if err != nil {
		logger.Error("SubmitPayload activity failed", "poNumber", input.PONumber, "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("SubmitPayload activity completed", "poNumber", input.PONumber)
	return result, nil
}

// ToApplicationError tags err with a type the caller can map back to the
// gateway error taxonomy.
func ToApplicationError(err error) error {
	var cfgErr *apierrors.ConfigurationError
	if errors.As(err, &cfgErr) {
		return temporal.NewNonRetryableApplicationError(err.Error(), ConfigurationErrorType, err, cfgErr.Key)
	}
	var valErr *apierrors.ValidationError
	if errors.As(err, &valErr) {
		return temporal.NewNonRetryableApplicationError(err.Error(), ValidationErrorType, err, valErr.Detail)
	}
	var subErr *apierrors.SubmissionError
	if errors.As(err, &subErr) {
		return temporal.NewApplicationErrorWithCause(err.Error(), SubmissionErrorType, err, subErr.StatusCode)
	}
	return err
}

// FromApplicationError reverses ToApplicationError on an error returned by a
// workflow run. Errors without a known type are returned unchanged.
func FromApplicationError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ConfigurationErrorType:
		var key string
		if appErr.HasDetails() && appErr.Details(&key) == nil && key != "" {
			return apierrors.NewConfigurationError(key)
		}
	case ValidationErrorType:
		var detail string
		if appErr.HasDetails() && appErr.Details(&detail) == nil {
			return apierrors.NewValidationError(detail)
		}
	case SubmissionErrorType:
		var status int
		if appErr.HasDetails() {
			_ = appErr.Details(&status)
		}
		return &apierrors.SubmissionError{StatusCode: status, Err: errors.New(appErr.Message())}
	}
	return errors.New(appErr.Message())
}
