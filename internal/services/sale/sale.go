// Package services содержит бизнес-логику продаж товаров.
package services

import (
	"context"
	"log/slog"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// SaleRepository определяет методы для работы с продажами в хранилище.
type SaleRepository interface {
	CreateSale(ctx context.Context, sale models.Sale) (int64, error)
	ListSales(ctx context.Context, limit, offset int) ([]*models.Sale, error)
	ReadProduct(ctx context.Context, id int64) (*models.Product, error)
}

// SaleService реализует бизнес-логику продаж.
type SaleService struct {
	repo SaleRepository
	log  *slog.Logger
}

// NewSaleService создает новый экземпляр SaleService.
func NewSaleService(repo SaleRepository, log *slog.Logger) *SaleService {
	return &SaleService{repo: repo, log: log}
}

// Create проводит продажу: сумма фиксируется по текущей цене товара,
// контроль остатка выполняет хранилище в той же транзакции.
func (s *SaleService) Create(ctx context.Context, req models.DummySale) (int64, error) {
	product, err := s.repo.ReadProduct(ctx, req.ProductID)
	if err != nil {
		return 0, err
	}

	sale := models.Sale{
		ProductID: req.ProductID,
		UserUID:   req.UserUID,
		Quantity:  req.Quantity,
		Total:     product.Price * float64(req.Quantity),
	}
	return s.repo.CreateSale(ctx, sale)
}

// List возвращает список продаж с пагинацией.
func (s *SaleService) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	return s.repo.ListSales(ctx, limit, offset)
}
