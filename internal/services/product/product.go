// Package services содержит бизнес-логику для управления товарами.
package services

import (
	"context"
	"log/slog"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p models.Product) (int64, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product, id int64) (int, error)
}

// ProductService реализует бизнес-логику работы с товарами.
type ProductService struct {
	repo ProductRepository
	log  *slog.Logger
}

// NewProductService создает новый экземпляр ProductService.
func NewProductService(repo ProductRepository, log *slog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

// Create добавляет товар и возвращает его ID.
func (s *ProductService) Create(ctx context.Context, req models.DummyProduct) (int64, error) {
	return s.repo.CreateProduct(ctx, models.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
}

// List возвращает список товаров с пагинацией.
func (s *ProductService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	return s.repo.ListProducts(ctx, limit, offset)
}

// Update обновляет товар по ID.
func (s *ProductService) Update(ctx context.Context, id int64, req models.DummyProduct) (int, error) {
	return s.repo.UpdateProduct(ctx, models.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}, id)
}
