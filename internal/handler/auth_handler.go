package handler

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

type authService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) error
}

// AuthHandler wires account operations onto the bridge.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Mount registers the auth and settings operations.
func (h *AuthHandler) Mount(d *Dispatcher) {
	d.Register("auth:register", h.Register)
	d.Register("auth:login", h.Login)
	d.Register("auth:logout", h.Logout)
	d.Register("auth:currentUser", h.CurrentUser)
	d.Register("settings:update", h.UpdateSettings)
	d.Register("settings:changePassword", h.ChangePassword)
}

// Register handles auth:register.
func (h *AuthHandler) Register(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req models.RegisterRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Register(ctx, req)
}

// Login handles auth:login.
func (h *AuthHandler) Login(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req models.LoginRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Login(ctx, req)
}

// Logout handles auth:logout.
func (h *AuthHandler) Logout(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	return nil, h.service.Logout(ctx)
}

// CurrentUser handles auth:currentUser.
func (h *AuthHandler) CurrentUser(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.CurrentUser(ctx, req.Token)
}

// UpdateSettings handles settings:update.
func (h *AuthHandler) UpdateSettings(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		UserID       string                      `json:"user_id"`
		SettingsData models.UpdateProfileRequest `json:"settings_data"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return nil, h.service.UpdateProfile(ctx, req.UserID, req.SettingsData)
}

// ChangePassword handles settings:changePassword.
func (h *AuthHandler) ChangePassword(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req models.ChangePasswordRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return nil, h.service.ChangePassword(ctx, req)
}
