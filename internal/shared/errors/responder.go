package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responder writes failure envelopes for gin handlers.
type Responder struct{}

// NewResponder creates a responder using the default status mapping.
func NewResponder() *Responder {
	return &Responder{}
}

// DefaultResponder is shared by handlers that need no custom mapping.
var DefaultResponder = NewResponder()

// Respond aborts the request with status and a failure envelope.
func (r *Responder) Respond(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewFailure(message))
}

// RespondError maps err to a status code and responds with its message.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	r.Respond(c, HTTPStatusFromError(err), err.Error())
}

// BadRequest sends a 400 failure envelope.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, http.StatusBadRequest, detail)
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, status int, message string) {
	DefaultResponder.Respond(c, status, message)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// ErrorMapper maps an error to a status and message when it recognizes it.
type ErrorMapper func(err error) (status int, message string, ok bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(),
		mappers:   mappers,
	}
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	for _, mapper := range r.mappers {
		if status, message, ok := mapper(err); ok {
			r.Respond(c, status, message)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// HTTPStatusFromError returns 400 for validation failures and 500 otherwise.
// Configuration and submission failures are server-side from the caller's view.
func HTTPStatusFromError(err error) int {
	if IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
