package models

import "time"

// Product представляет товар в магазине при зале.
// Stock никогда не уходит в минус: продажа сверх остатка отклоняется.
type Product struct {
	ID        int64
	Name      string
	Price     float64
	Stock     int
	CreatedAt time.Time
}

// Sale представляет продажу товара члену клуба или на кассу без привязки.
type Sale struct {
	ID        int64
	ProductID int64
	UserUID   *string // nil для анонимной продажи
	Quantity  int
	Total     float64 // Цена на момент продажи * количество
	CreatedAt time.Time
}

// DummyProduct используется для приёма данных товара из JSON-запроса.
type DummyProduct struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

// DummySale используется для приёма данных продажи из JSON-запроса.
type DummySale struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	UserUID   *string `json:"user_uid" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}
