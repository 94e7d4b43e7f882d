package orders

import "magacin-backend/internal/models"

// Store je uski ugovor ka relacionoj bazi: transakcioni pristup
// narudžbenicama, stavkama i proizvodima. GormStore je produkciona
// implementacija; testovi koriste in-memory varijantu.
type Store interface {
	// Transaction izvršava fn nad transakcionom kopijom store-a;
	// bilo koja greška poništava sve izmene unutar fn.
	Transaction(fn func(tx Store) error) error

	GetProduct(id uint) (*models.Product, error)

	// AdjustStock menja količinu na lageru za delta (pozitivno za
	// nabavku, negativno za prodaju) i vraća novu količinu. Rezultat
	// nikad ne sme da bude negativan — u tom slučaju vraća
	// InsufficientStockError i ne menja ništa.
	AdjustStock(productID uint, delta int) (int, error)

	CreateOrder(o *models.Order) error
	GetOrder(id uint) (*models.Order, error)

	// GetOrderForUpdate čita narudžbenicu i zaključava njen red do
	// kraja tekuće transakcije, pa se istovremeni prelazi statusa nad
	// istom narudžbenicom serijalizuju već na čitanju. Van transakcije
	// se ne koristi.
	GetOrderForUpdate(id uint) (*models.Order, error)
	ListOrders(courierID *uint) ([]models.Order, error)
	SaveOrder(o *models.Order) error
	DeleteOrder(id uint) error
}
