package bycedula

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// MockService реализует интерфейс bycedula.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ValidateByCedula(ctx context.Context, cedula string) (membership.Decision, error) {
	args := m.Called(ctx, cedula)
	return args.Get(0).(membership.Decision), args.Error(1)
}

func TestValidateByCedulaHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		cedula         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "допуск действующего члена клуба",
			cedula: "1102233445",
			setupMock: func(m *MockService) {
				m.On("ValidateByCedula", mock.Anything, "1102233445").Return(membership.Decision{
					Admit:          true,
					Status:         membership.StatusCurrent,
					DisplayMessage: "membership active, 12 day(s) remaining",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"admit":true`,
		},
		{
			name:   "отказ по неизвестному идентификатору",
			cedula: "999999",
			setupMock: func(m *MockService) {
				m.On("ValidateByCedula", mock.Anything, "999999").Return(membership.NotFoundDecision(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"USER_NOT_FOUND"`,
		},
		{
			name:           "некорректный идентификатор",
			cedula:         "abc!",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"invalid cedula"`,
		},
		{
			name:   "неоднозначный идентификатор",
			cedula: "7788",
			setupMock: func(m *MockService) {
				m.On("ValidateByCedula", mock.Anything, "7788").
					Return(membership.Decision{}, repository.ErrAmbiguousIdentifier)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"identifier matches more than one user"`,
		},
		{
			name:   "ошибка сервиса",
			cedula: "1102233445",
			setupMock: func(m *MockService) {
				m.On("ValidateByCedula", mock.Anything, "1102233445").
					Return(membership.Decision{}, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not validate access"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/validate/cedula/"+tt.cedula, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("cedula", tt.cedula)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
