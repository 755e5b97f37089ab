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
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSale(ctx context.Context, sale models.Sale) (int64, error) {
	args := m.Called(ctx, sale)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListSales(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sale), args.Error(1)
}
func (m *RepoMock) ReadProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSaleService_Create(t *testing.T) {
	water := &models.Product{ID: 5, Name: "Agua", Price: 1.5, Stock: 20}

	repo := new(RepoMock)
	repo.On("ReadProduct", mock.Anything, int64(5)).Return(water, nil).Once()
	repo.On("CreateSale", mock.Anything, mock.MatchedBy(func(s models.Sale) bool {
		return s.ProductID == 5 && s.Quantity == 3 && s.Total == 4.5 && s.UserUID == nil
	})).Return(int64(100), nil).Once()

	svc := NewSaleService(repo, newNoopLogger())
	id, err := svc.Create(context.Background(), models.DummySale{ProductID: 5, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	repo.AssertExpectations(t)
}

func TestSaleService_Create_InsufficientStock(t *testing.T) {
	water := &models.Product{ID: 5, Name: "Agua", Price: 1.5, Stock: 1}

	repo := new(RepoMock)
	repo.On("ReadProduct", mock.Anything, int64(5)).Return(water, nil).Once()
	repo.On("CreateSale", mock.Anything, mock.Anything).Return(int64(0), repository.ErrInsufficientStock).Once()

	svc := NewSaleService(repo, newNoopLogger())
	_, err := svc.Create(context.Background(), models.DummySale{ProductID: 5, Quantity: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
}

func TestSaleService_Create_ProductMissing(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ReadProduct", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound).Once()

	svc := NewSaleService(repo, newNoopLogger())
	_, err := svc.Create(context.Background(), models.DummySale{ProductID: 9, Quantity: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
