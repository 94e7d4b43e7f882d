package models

import "time"

type OrderType string

const (
	OrderTypePurchase OrderType = "NABAVKA"
	OrderTypeSale     OrderType = "PRODAJA"
)

type OrderStatus string

const (
	StatusCreated   OrderStatus = "KREIRANA"
	StatusSent      OrderStatus = "POSLATA"
	StatusInTransit OrderStatus = "U_TRANSPORTU"
	StatusReceived  OrderStatus = "PRIMLJENA"
	StatusCompleted OrderStatus = "ZAVRSENA"
	StatusCancelled OrderStatus = "OTKAZANA"
	StatusVoided    OrderStatus = "STORNIRANA"
)

// Order: narudžbenica (NABAVKA od dobavljača ili PRODAJA kupcu).
// Ukupna vrednost je snimak zbira stavki u trenutku kreiranja i ne
// preračunava se kasnije; stavke su nepromenljive posle kreiranja.
type Order struct {
	ID          uint        `gorm:"primaryKey"`
	Type        OrderType   `gorm:"size:20;not null;index"`
	Status      OrderStatus `gorm:"size:20;not null;index"`
	CreatedByID uint        `gorm:"not null"`
	CreatedBy   *User       `gorm:"foreignKey:CreatedByID"`
	SupplierID  *uint       // obavezan za NABAVKU, zabranjen za PRODAJU
	Supplier    *Supplier
	CourierID   *uint // dodeljeni dostavljač
	Courier     *User `gorm:"foreignKey:CourierID"`
	Total       float64 `gorm:"not null"`
	Note        string  `gorm:"size:255"`
	Voided      bool    `gorm:"not null;default:false"` // stornirana
	VoidReason  string  `gorm:"size:255"`
	VoidedByID  *uint
	VoidedAt    *time.Time
	CompletedAt *time.Time // datum završetka
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem: stavka narudžbenice. Za PRODAJU UnitPrice je snimak
// prodajne cene proizvoda u trenutku kreiranja; za NABAVKU se cena ne
// snima, bitna je samo količina.
type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
	Total     float64 `gorm:"not null"`
	CreatedAt time.Time
}
