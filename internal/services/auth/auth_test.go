package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/gymcontrol/internal/lib/jwt"
	"github.com/dparedesb/gymcontrol/internal/lib/password"
	"github.com/dparedesb/gymcontrol/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newMaker(t *testing.T) jwt.Maker {
	t.Helper()
	return jwt.NewJWTMaker("test-secret-key", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	users := new(UsersMock)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "reception" &&
			u.Role == "staff" &&
			u.Active &&
			password.CompareHash(u.PasswordHash, "secret123") == nil
	})).Return("uid-1", nil).Once()

	svc := NewAuthService(users, newMaker(t))
	uid, err := svc.Register(context.Background(), "reception", "reception@gym.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	users.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	staff := &models.User{
		UID:          "uid-1",
		Username:     "reception",
		Role:         "staff",
		PasswordHash: hash,
		Active:       true,
	}

	tests := []struct {
		name     string
		username string
		pass     string
		stored   *models.User
		wantErr  bool
	}{
		{name: "success", username: "reception", pass: "secret123", stored: staff},
		{name: "wrong password", username: "reception", pass: "nope", stored: staff, wantErr: true},
		{name: "unknown user", username: "ghost", pass: "secret123", stored: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			if tt.stored != nil {
				users.On("GetUserByUsername", mock.Anything, tt.username).Return(tt.stored, nil).Once()
			} else {
				users.On("GetUserByUsername", mock.Anything, tt.username).Return(nil, assert.AnError).Once()
			}

			maker := newMaker(t)
			svc := NewAuthService(users, maker)
			token, role, err := svc.Login(context.Background(), tt.username, tt.pass)
			if tt.wantErr {
				require.Error(t, err)
				assert.EqualError(t, err, "invalid credentials")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "staff", role)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "reception", claims.Username)
			assert.Equal(t, "uid-1", claims.UserUID)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	maker := newMaker(t)
	svc := NewAuthService(new(UsersMock), maker)

	token, err := maker.GenerateToken("reception", "staff", "uid-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Role)

	_, err = svc.ValidateToken(context.Background(), token+"broken")
	require.Error(t, err)
}
