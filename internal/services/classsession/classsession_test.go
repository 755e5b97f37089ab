package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/gymcontrol/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateClassSession(ctx context.Context, c models.ClassSession) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListClassSessions(ctx context.Context, limit, offset int) ([]*models.ClassSession, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ClassSession), args.Error(1)
}
func (m *RepoMock) EnrollInClass(ctx context.Context, classID int64, userUID string) error {
	args := m.Called(ctx, classID, userUID)
	return args.Error(0)
}

func newService(repo *RepoMock) *ClassService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClassService(repo, log)
}

func TestClassService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       models.DummyClassSession
		mockSetup func(repo *RepoMock)
		wantID    int64
		wantErr   error
	}{
		{
			name: "successful create",
			req: models.DummyClassSession{
				Name:       "Spinning",
				Instructor: "Carlos Mora",
				StartsAt:   "2026-09-01T18:00:00Z",
				EndsAt:     "2026-09-01T19:00:00Z",
				Capacity:   15,
			},
			mockSetup: func(repo *RepoMock) {
				repo.On("CreateClassSession", mock.Anything, mock.MatchedBy(func(c models.ClassSession) bool {
					return c.Name == "Spinning" && c.EndsAt.After(c.StartsAt) && c.Capacity == 15
				})).Return(int64(7), nil).Once()
			},
			wantID: 7,
		},
		{
			name: "ends before it starts",
			req: models.DummyClassSession{
				Name:       "Spinning",
				Instructor: "Carlos Mora",
				StartsAt:   "2026-09-01T19:00:00Z",
				EndsAt:     "2026-09-01T18:00:00Z",
				Capacity:   15,
			},
			mockSetup: func(_ *RepoMock) {},
			wantErr:   ErrInvalidSchedule,
		},
		{
			name: "zero-length session",
			req: models.DummyClassSession{
				Name:       "Stretch",
				Instructor: "Carlos Mora",
				StartsAt:   "2026-09-01T18:00:00Z",
				EndsAt:     "2026-09-01T18:00:00Z",
				Capacity:   10,
			},
			mockSetup: func(_ *RepoMock) {},
			wantErr:   ErrInvalidSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.mockSetup(repo)
			svc := newService(repo)

			id, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "CreateClassSession")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			repo.AssertExpectations(t)
		})
	}
}

func TestClassService_Create_BadDate(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo)

	_, err := svc.Create(context.Background(), models.DummyClassSession{
		Name:       "Spinning",
		Instructor: "Carlos Mora",
		StartsAt:   "01-09-2026 18:00",
		EndsAt:     "2026-09-01T19:00:00Z",
		Capacity:   15,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starts_at")
	repo.AssertNotCalled(t, "CreateClassSession")
}

func TestClassService_Enroll(t *testing.T) {
	repo := new(RepoMock)
	repo.On("EnrollInClass", mock.Anything, int64(3), "member-uid").Return(nil).Once()
	svc := newService(repo)

	err := svc.Enroll(context.Background(), 3, "member-uid")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
