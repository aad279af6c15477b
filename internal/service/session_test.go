package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

func claimsWithID(id string) *models.SessionClaims {
	return &models.SessionClaims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ID: id},
	}
}

func TestSessionRegistryStartReplaces(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Start(claimsWithID("token-1"))
	reg.Start(claimsWithID("token-2"))

	assert.False(t, reg.IsActive("token-1"))
	assert.True(t, reg.IsActive("token-2"))
}

func TestSessionRegistryClear(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Start(claimsWithID("token-1"))
	reg.Clear()

	assert.Nil(t, reg.Current())
	assert.False(t, reg.IsActive("token-1"))
}

func TestSessionRegistryCurrentReturnsCopy(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Start(claimsWithID("token-1"))

	current := reg.Current()
	require.NotNil(t, current)
	current.UserID = "tampered"

	assert.Equal(t, "u1", reg.Current().UserID)
}
