package orders

import (
	"sort"
	"sync"
	"time"

	"magacin-backend/internal/models"
)

// memoryStore: in-memory implementacija Store ugovora za testove.
// Transaction drži mutex za ceo blok (kao što red-lock u bazi
// serijalizuje transakcije nad istim redovima) i vraća snimak stanja
// ako fn vrati grešku.
type memoryStore struct {
	mu            sync.Mutex
	nextProductID uint
	nextOrderID   uint
	nextItemID    uint
	products      map[uint]models.Product
	orders        map[uint]models.Order
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextProductID: 1,
		nextOrderID:   1,
		nextItemID:    1,
		products:      make(map[uint]models.Product),
		orders:        make(map[uint]models.Order),
	}
}

func (m *memoryStore) addProduct(p models.Product) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextProductID
	m.nextProductID++
	m.products[p.ID] = p
	return p.ID
}

func (m *memoryStore) setSalePrice(productID uint, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[productID]
	p.SalePrice = price
	m.products[productID] = p
}

func (m *memoryStore) stock(productID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[productID].StockQuantity
}

func copyOrder(o models.Order) models.Order {
	cp := o
	cp.Items = make([]models.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return cp
}

func (m *memoryStore) snapshot() (map[uint]models.Product, map[uint]models.Order) {
	products := make(map[uint]models.Product, len(m.products))
	for id, p := range m.products {
		products[id] = p
	}
	orders := make(map[uint]models.Order, len(m.orders))
	for id, o := range m.orders {
		orders[id] = copyOrder(o)
	}
	return products, orders
}

func (m *memoryStore) Transaction(fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	products, orders := m.snapshot()
	if err := fn(&txMemoryStore{m}); err != nil {
		m.products = products
		m.orders = orders
		return err
	}
	return nil
}

func (m *memoryStore) GetProduct(id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getProduct(id)
}

func (m *memoryStore) AdjustStock(productID uint, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustStock(productID, delta)
}

func (m *memoryStore) CreateOrder(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createOrder(o)
}

func (m *memoryStore) GetOrder(id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrder(id)
}

func (m *memoryStore) GetOrderForUpdate(id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrder(id)
}

func (m *memoryStore) ListOrders(courierID *uint) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listOrders(courierID)
}

func (m *memoryStore) SaveOrder(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveOrder(o)
}

func (m *memoryStore) DeleteOrder(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteOrder(id)
}

// txMemoryStore: pogled na store unutar transakcije, bez zaključavanja
// (mutex već drži Transaction).
type txMemoryStore struct {
	m *memoryStore
}

func (t *txMemoryStore) Transaction(fn func(tx Store) error) error { return fn(t) }

func (t *txMemoryStore) GetProduct(id uint) (*models.Product, error) { return t.m.getProduct(id) }
func (t *txMemoryStore) AdjustStock(id uint, delta int) (int, error) { return t.m.adjustStock(id, delta) }
func (t *txMemoryStore) CreateOrder(o *models.Order) error           { return t.m.createOrder(o) }
func (t *txMemoryStore) GetOrder(id uint) (*models.Order, error)     { return t.m.getOrder(id) }
func (t *txMemoryStore) GetOrderForUpdate(id uint) (*models.Order, error) {
	return t.m.getOrder(id)
}
func (t *txMemoryStore) ListOrders(cid *uint) ([]models.Order, error) {
	return t.m.listOrders(cid)
}
func (t *txMemoryStore) SaveOrder(o *models.Order) error { return t.m.saveOrder(o) }
func (t *txMemoryStore) DeleteOrder(id uint) error       { return t.m.deleteOrder(id) }

func (m *memoryStore) getProduct(id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := p
	return &cp, nil
}

func (m *memoryStore) adjustStock(productID uint, delta int) (int, error) {
	p, ok := m.products[productID]
	if !ok {
		return 0, ErrProductNotFound
	}
	if delta < 0 && p.StockQuantity < -delta {
		return 0, &InsufficientStockError{
			ProductID: productID,
			Available: p.StockQuantity,
			Requested: -delta,
		}
	}
	p.StockQuantity += delta
	m.products[productID] = p
	return p.StockQuantity, nil
}

func (m *memoryStore) createOrder(o *models.Order) error {
	o.ID = m.nextOrderID
	m.nextOrderID++
	o.CreatedAt = time.Now()
	for i := range o.Items {
		o.Items[i].ID = m.nextItemID
		m.nextItemID++
		o.Items[i].OrderID = o.ID
	}
	m.orders[o.ID] = copyOrder(*o)
	return nil
}

func (m *memoryStore) getOrder(id uint) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := copyOrder(o)
	return &cp, nil
}

func (m *memoryStore) listOrders(courierID *uint) ([]models.Order, error) {
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if courierID != nil && (o.CourierID == nil || *o.CourierID != *courierID) {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryStore) saveOrder(o *models.Order) error {
	existing, ok := m.orders[o.ID]
	if !ok {
		return ErrOrderNotFound
	}
	// stavke su nepromenljive — zadržava se postojeći skup
	cp := copyOrder(*o)
	cp.Items = existing.Items
	m.orders[o.ID] = cp
	return nil
}

func (m *memoryStore) deleteOrder(id uint) error {
	if _, ok := m.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}
