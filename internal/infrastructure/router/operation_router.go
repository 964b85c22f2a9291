package router

import (
	"context"
	"encoding/json"

	"surety-service/pkg/logger"
)

// Request is the transaction envelope accepted from external callers.
// Params is decoded by the operation's handler.
type Request struct {
	Operation string          `json:"operation"`
	Caller    string          `json:"caller"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// Handler handles one or more transaction operations.
type Handler interface {
	CanHandle(operation string) bool
	Handle(ctx context.Context, req *Request) (interface{}, error)
}

// OperationRouter routes transaction envelopes to appropriate handlers
// based on operation name.
type OperationRouter struct {
	handlers []Handler
	logger   logger.Logger
}

// NewOperationRouter creates a new operation router
func NewOperationRouter(logger logger.Logger) *OperationRouter {
	return &OperationRouter{
		handlers: make([]Handler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific operations
func (r *OperationRouter) Register(handler Handler) {
	r.handlers = append(r.handlers, handler)
}

// GetHandler returns the appropriate handler for a given operation
func (r *OperationRouter) GetHandler(operation string) Handler {
	for _, handler := range r.handlers {
		if handler.CanHandle(operation) {
			return handler
		}
	}
	return nil
}
