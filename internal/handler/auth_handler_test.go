package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/models"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

type mockAuthService struct {
	loginReq    *models.LoginRequest
	loginRes    *models.AuthResponse
	loginErr    error
	loggedOut   bool
	profileID   string
	profileData models.UpdateProfileRequest
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return &models.AuthResponse{User: &models.User{Username: req.Username}, Token: "token"}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	m.loginReq = &req
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginRes, nil
}

func (m *mockAuthService) Logout(ctx context.Context) error {
	m.loggedOut = true
	return nil
}

func (m *mockAuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	return nil, appErrors.ErrNoActiveSession
}

func (m *mockAuthService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return nil
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) error {
	m.profileID = userID
	m.profileData = req
	return nil
}

func mountAuth(svc *mockAuthService) *Dispatcher {
	d := NewDispatcher(zap.NewNop(), nil)
	NewAuthHandler(svc).Mount(d)
	return d
}

func TestAuthLoginOp(t *testing.T) {
	svc := &mockAuthService{loginRes: &models.AuthResponse{
		User:  &models.User{ID: "t1", Email: "guru@example.com"},
		Token: "jwt",
	}}
	d := mountAuth(svc)

	env := d.Invoke(context.Background(), "auth:login",
		json.RawMessage(`{"email":"guru@example.com","password":"secret123"}`))
	assert.True(t, env.Success)
	require.NotNil(t, svc.loginReq)
	assert.Equal(t, "guru@example.com", svc.loginReq.Email)

	res, ok := env.Data.(*models.AuthResponse)
	require.True(t, ok)
	assert.Equal(t, "jwt", res.Token)
}

func TestAuthLoginOpFailureEnvelope(t *testing.T) {
	svc := &mockAuthService{loginErr: appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")}
	d := mountAuth(svc)

	env := d.Invoke(context.Background(), "auth:login",
		json.RawMessage(`{"email":"guru@example.com","password":"wrong"}`))
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, env.Code)
	assert.Equal(t, "invalid email or password", env.Error)
	assert.Nil(t, env.Data)
}

func TestAuthLogoutOp(t *testing.T) {
	svc := &mockAuthService{}
	d := mountAuth(svc)

	env := d.Invoke(context.Background(), "auth:logout", nil)
	assert.True(t, env.Success)
	assert.True(t, svc.loggedOut)
}

func TestAuthCurrentUserOpNoSession(t *testing.T) {
	d := mountAuth(&mockAuthService{})

	env := d.Invoke(context.Background(), "auth:currentUser", json.RawMessage(`{}`))
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrNoActiveSession.Code, env.Code)
}

func TestSettingsUpdateOp(t *testing.T) {
	svc := &mockAuthService{}
	d := mountAuth(svc)

	env := d.Invoke(context.Background(), "settings:update",
		json.RawMessage(`{"user_id":"t1","settings_data":{"username":"guru","email":"guru@example.com"}}`))
	assert.True(t, env.Success)
	assert.Equal(t, "t1", svc.profileID)
	assert.Equal(t, "guru", svc.profileData.Username)
}
