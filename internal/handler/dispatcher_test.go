package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

func TestDispatcherSuccessEnvelope(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), nil)
	d.Register("echo:get", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		return map[string]string{"hello": "world"}, nil
	})

	env := d.Invoke(context.Background(), "echo:get", nil)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.NotNil(t, env.Data)
}

func TestDispatcherUnknownOp(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), nil)

	env := d.Invoke(context.Background(), "no:suchOp", nil)
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrNotFound.Code, env.Code)
	assert.Contains(t, env.Error, "no:suchOp")
}

func TestDispatcherTypedErrorEnvelope(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), nil)
	d.Register("fail:typed", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "student not found or access denied")
	})

	env := d.Invoke(context.Background(), "fail:typed", nil)
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, env.Code)
	assert.Equal(t, "student not found or access denied", env.Error)
}

func TestDispatcherUntypedErrorBecomesInternal(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), nil)
	d.Register("fail:plain", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		return nil, errors.New("disk on fire")
	})

	env := d.Invoke(context.Background(), "fail:plain", nil)
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrInternal.Code, env.Code)
}

func TestDispatcherRecoversPanic(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), NewMetrics(prometheus.NewRegistry()))
	d.Register("boom:now", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		panic("kaboom")
	})

	env := d.Invoke(context.Background(), "boom:now", nil)
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrInternal.Code, env.Code)
}

func TestDispatcherDuplicateRegistrationPanics(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), nil)
	op := func(ctx context.Context, payload json.RawMessage) (interface{}, error) { return nil, nil }
	d.Register("dup:op", op)

	assert.Panics(t, func() { d.Register("dup:op", op) })
}

func TestDecodeEmptyPayload(t *testing.T) {
	var req struct {
		TeacherID string `json:"teacher_id"`
	}
	require.NoError(t, decode(nil, &req))
	assert.Empty(t, req.TeacherID)
}

func TestDecodeMalformedPayload(t *testing.T) {
	var req struct{}
	err := decode(json.RawMessage(`{"broken`), &req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
