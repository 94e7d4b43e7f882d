package models

import "time"

// Product: proizvod u magacinu. Količinu na lageru menja isključivo
// orders paket (AdjustStock) pri završavanju narudžbenice — CRUD nad
// proizvodima je ne dira.
type Product struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"size:100;not null"`
	Code          string  `gorm:"size:50;not null;uniqueIndex"` // šifra proizvoda
	PurchasePrice float64 `gorm:"not null"`                     // nabavna cena, nepromenljiva posle kreiranja
	SalePrice     float64 `gorm:"not null"`                     // prodajna cena, mora biti > nabavne
	StockQuantity int     `gorm:"not null;default:0"`           // količina na lageru
	MinQuantity   int     `gorm:"not null;default:0"`           // prag za obaveštenje o niskom lageru
	Unit          string  `gorm:"size:20;not null"`             // jedinica mere (kom, kg, l...)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
