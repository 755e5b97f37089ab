package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/gymcontrol/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateMembership(ctx context.Context, ms models.Membership) (int64, error) {
	args := m.Called(ctx, ms)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ReadMembership(ctx context.Context, id int64) (*models.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}
func (m *RepoMock) ListMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Membership), args.Error(1)
}
func (m *RepoMock) RenewMembership(ctx context.Context, id int64, startDate, endDate time.Time) (int, error) {
	args := m.Called(ctx, id, startDate, endDate)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateMembershipStatus(ctx context.Context, id int64, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadPlan(ctx context.Context, id int64) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMembershipService_Create(t *testing.T) {
	member := &models.User{UID: "uid-1", Cedula: "1102233445", Holler: "7788", Role: "member"}
	plan := &models.Plan{ID: 3, Name: "Mensual", DurationDays: 30}

	tests := []struct {
		name       string
		req        models.DummyMembership
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int64
		wantErr    bool
	}{
		{
			name: "success",
			req:  models.DummyMembership{UserUID: "uid-1", PlanID: 3, StartDate: "01-06-2025"},
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("ReadPlan", mock.Anything, int64(3)).Return(plan, nil).Once()
				r.On("CreateMembership", mock.Anything, mock.MatchedBy(func(ms models.Membership) bool {
					start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
					return ms.UserUID == "uid-1" &&
						ms.StartDate.Equal(start) &&
						ms.EndDate.Equal(start.AddDate(0, 0, 30)) &&
						ms.Status == models.MembershipActive
				})).Return(int64(10), nil).Once()
				r.On("GetUser", mock.Anything, "uid-1").Return(member, nil).Once()
				c.On("Invalidate", "snapshot:cedula:1102233445").Return(nil).Once()
				c.On("Invalidate", "snapshot:holler:7788").Return(nil).Once()
			},
			wantID: 10,
		},
		{
			name:       "invalid date",
			req:        models.DummyMembership{UserUID: "uid-1", PlanID: 3, StartDate: "2025-06-01"},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    true,
		},
		{
			name: "plan missing",
			req:  models.DummyMembership{UserUID: "uid-1", PlanID: 9, StartDate: "01-06-2025"},
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("ReadPlan", mock.Anything, int64(9)).Return(nil, assert.AnError).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			c := new(CacheMock)
			tt.setupMocks(repo, c)

			svc := NewMembershipService(repo, c, newNoopLogger())
			id, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			repo.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestMembershipService_Renew(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)

	stored := &models.Membership{ID: 10, UserUID: "uid-1", PlanID: 3}
	plan := &models.Plan{ID: 3, DurationDays: 30}
	member := &models.User{UID: "uid-1", Cedula: "1102233445", Role: "member"}

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	repo.On("ReadMembership", mock.Anything, int64(10)).Return(stored, nil).Once()
	repo.On("ReadPlan", mock.Anything, int64(3)).Return(plan, nil).Once()
	repo.On("RenewMembership", mock.Anything, int64(10), start, start.AddDate(0, 0, 30)).Return(1, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").Return(member, nil).Once()
	c.On("Invalidate", "snapshot:cedula:1102233445").Return(nil).Once()

	svc := NewMembershipService(repo, c, newNoopLogger())
	n, err := svc.Renew(context.Background(), 10, "01-07-2025")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestMembershipService_SetStatus(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)

	stored := &models.Membership{ID: 10, UserUID: "uid-1", Status: models.MembershipActive}
	member := &models.User{UID: "uid-1", Holler: "7788", Role: "member"}

	repo.On("ReadMembership", mock.Anything, int64(10)).Return(stored, nil).Once()
	repo.On("UpdateMembershipStatus", mock.Anything, int64(10), models.MembershipSuspended).Return(1, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").Return(member, nil).Once()
	c.On("Invalidate", "snapshot:holler:7788").Return(nil).Once()

	svc := NewMembershipService(repo, c, newNoopLogger())
	n, err := svc.SetStatus(context.Background(), 10, models.MembershipSuspended)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}
