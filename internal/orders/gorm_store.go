package orders

import (
	"errors"

	"magacin-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AdjustStock: atomičan update nad redom proizvoda. Za smanjenje se u
// WHERE uslov dodaje provera stanja, pa dve istovremene prodaje istog
// proizvoda ne mogu obe da prođu proveru — red proizvoda je zaključan
// dok traje transakcija.
func (s *GormStore) AdjustStock(productID uint, delta int) (int, error) {
	q := s.db.Model(&models.Product{}).Where("id = ?", productID)
	if delta < 0 {
		q = q.Where("stock_quantity >= ?", -delta)
	}
	res := q.UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// proizvod ne postoji ili nema dovoljno na stanju
		p, err := s.GetProduct(productID)
		if err != nil {
			return 0, err
		}
		return 0, &InsufficientStockError{
			ProductID: productID,
			Available: p.StockQuantity,
			Requested: -delta,
		}
	}

	p, err := s.GetProduct(productID)
	if err != nil {
		return 0, err
	}
	return p.StockQuantity, nil
}

func (s *GormStore) CreateOrder(o *models.Order) error {
	return s.db.Create(o).Error
}

func (s *GormStore) GetOrder(id uint) (*models.Order, error) {
	var o models.Order
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			// stavke se obrađuju redom kojim su unete
			return db.Order("order_items.id asc")
		}).
		Preload("Items.Product").
		Preload("Supplier").
		Preload("CreatedBy").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetOrderForUpdate: SELECT ... FOR UPDATE nad zaglavljem, pa druga
// transakcija ne može da pročita status pre nego što se ova završi.
// Preload upiti rade bez brave, zaglavlje je dovoljno za serijalizaciju.
func (s *GormStore) GetOrderForUpdate(id uint) (*models.Order, error) {
	var o models.Order
	err := s.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id asc")
		}).
		Preload("Items.Product").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *GormStore) ListOrders(courierID *uint) ([]models.Order, error) {
	q := s.db.
		Preload("Supplier").
		Preload("CreatedBy").
		Order("created_at desc")
	if courierID != nil {
		q = q.Where("courier_id = ?", *courierID)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) SaveOrder(o *models.Order) error {
	// stavke su nepromenljive, snima se samo zaglavlje
	return s.db.Omit(clause.Associations).Save(o).Error
}

func (s *GormStore) DeleteOrder(id uint) error {
	if err := s.db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Order{}, id).Error
}
