package handler

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
	"github.com/noah-isme/attendance-bridge/pkg/response"
)

// Operation is one named bridge call. Payload is the single structured
// argument the UI sends.
type Operation func(ctx context.Context, payload json.RawMessage) (interface{}, error)

// Dispatcher routes op names to their handlers and guarantees the envelope
// contract: every outcome, including a panic, becomes {success, data, error}.
type Dispatcher struct {
	ops     map[string]Operation
	logger  *zap.Logger
	metrics *Metrics
}

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher(logger *zap.Logger, metrics *Metrics) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{ops: make(map[string]Operation), logger: logger, metrics: metrics}
}

// Register binds an operation name. Duplicate names are a programming error.
func (d *Dispatcher) Register(name string, op Operation) {
	if _, exists := d.ops[name]; exists {
		panic("duplicate bridge operation: " + name)
	}
	d.ops[name] = op
}

// Ops returns the registered operation names, for diagnostics.
func (d *Dispatcher) Ops() []string {
	names := make([]string, 0, len(d.ops))
	for name := range d.ops {
		names = append(names, name)
	}
	return names
}

// Invoke runs the named operation and wraps the outcome in an envelope.
func (d *Dispatcher) Invoke(ctx context.Context, name string, payload json.RawMessage) (envelope response.Envelope) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("bridge operation panicked", zap.String("op", name), zap.Any("panic", r))
			envelope = response.Err(appErrors.ErrInternal)
		}
		outcome := "ok"
		if !envelope.Success {
			outcome = "error"
		}
		d.metrics.Observe(name, outcome, time.Since(start))
	}()

	op, ok := d.ops[name]
	if !ok {
		d.logger.Warn("unknown bridge operation", zap.String("op", name))
		return response.Err(appErrors.Clone(appErrors.ErrNotFound, "unknown operation: "+name))
	}

	data, err := op(ctx, payload)
	if err != nil {
		appErr := appErrors.FromError(err)
		d.logger.Info("bridge operation failed",
			zap.String("op", name),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
		return response.Err(err)
	}
	return response.OK(data)
}

// decode unmarshals a payload, mapping malformed input to a validation error.
func decode(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed payload")
	}
	return nil
}
