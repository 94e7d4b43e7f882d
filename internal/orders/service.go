package orders

import (
	"strings"
	"time"

	"magacin-backend/internal/models"
)

// Actor: identitet iz JWT tokena, prosleđuje se eksplicitno kroz svaki
// poziv umesto čitanja iz globalnog stanja.
type Actor struct {
	UserID uint
	Role   models.UserRole
}

type NewOrderItem struct {
	ProductID uint
	Quantity  int
}

type NewOrder struct {
	Type       models.OrderType
	SupplierID *uint
	CourierID  *uint
	Note       string
	Items      []NewOrderItem
}

// Service sprovodi životni ciklus narudžbenice: kreiranje sa snimkom
// cena, prelaze statusa po tabeli i tačno jedno ažuriranje lagera pri
// završavanju. Sve izmene idu kroz transakciju store-a.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateOrder: validacija i provera kapabiliteta pre transakcije, zatim
// zaglavlje + stavke atomski. Lager se ne proverava pri kreiranju —
// provera i umanjenje slede tek pri završavanju PRODAJE.
func (s *Service) CreateOrder(actor Actor, in NewOrder) (*models.Order, error) {
	if in.Type != models.OrderTypePurchase && in.Type != models.OrderTypeSale {
		return nil, ErrInvalidType
	}
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range in.Items {
		if it.ProductID == 0 || it.Quantity <= 0 {
			return nil, ErrInvalidItem
		}
	}
	if in.Type == models.OrderTypePurchase && in.SupplierID == nil {
		return nil, ErrSupplierRequired
	}
	if in.Type == models.OrderTypeSale && in.SupplierID != nil {
		return nil, ErrSupplierForbidden
	}
	if !Allowed(actor.Role, OpCreate, in.Type) {
		return nil, ErrForbidden
	}
	// dodela dostavljača važi i pri kreiranju: samo vlasnik
	if in.CourierID != nil && !Allowed(actor.Role, OpAssignCourier, in.Type) {
		return nil, ErrForbidden
	}

	var created *models.Order
	err := s.store.Transaction(func(tx Store) error {
		order := &models.Order{
			Type:        in.Type,
			Status:      models.StatusCreated,
			CreatedByID: actor.UserID,
			SupplierID:  in.SupplierID,
			CourierID:   in.CourierID,
			Note:        strings.TrimSpace(in.Note),
		}

		for _, it := range in.Items {
			p, err := tx.GetProduct(it.ProductID)
			if err != nil {
				return err
			}
			// PRODAJA: snimak prodajne cene u trenutku kreiranja;
			// NABAVKA nosi samo količinu, cena ostaje na proizvodu
			var cena float64
			if in.Type == models.OrderTypeSale {
				cena = p.SalePrice
			}
			stavka := models.OrderItem{
				ProductID: p.ID,
				Quantity:  it.Quantity,
				UnitPrice: cena,
				Total:     cena * float64(it.Quantity),
			}
			order.Total += stavka.Total
			order.Items = append(order.Items, stavka)
		}

		if err := tx.CreateOrder(order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ChangeStatus: prelaz statusa po tabeli, sa ažuriranjem lagera tačno
// jednom pri prelasku u ZAVRSENA. Redosled provera: postojanje, isti
// status, tabela prelaza, razlog storniranja, uloge. Ceo efekat je u
// jednoj transakciji — prva stavka bez dovoljno lagera poništava i
// promenu statusa i ranija umanjenja.
func (s *Service) ChangeStatus(actor Actor, orderID uint, target models.OrderStatus, reason string, courierID *uint) (*models.Order, error) {
	if !ValidStatus(target) {
		return nil, ErrUnknownStatus
	}

	var updated *models.Order
	err := s.store.Transaction(func(tx Store) error {
		// brava nad redom narudžbenice: dva istovremena prelaza nad
		// istim ID-jem se serijalizuju ovde, pa drugi vidi već upisan
		// status i pada na proveri istog statusa
		o, err := tx.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}

		if o.Status == target {
			return ErrSameStatus
		}
		if !CanTransition(o.Type, o.Status, target) {
			return &InvalidTransitionError{
				Tip:     o.Type,
				From:    o.Status,
				To:      target,
				Allowed: AllowedTargets(o.Type, o.Status),
			}
		}
		if target == models.StatusVoided && strings.TrimSpace(reason) == "" {
			return ErrReasonRequired
		}

		// dostavljač sme da menja samo sebi dodeljenu narudžbenicu
		if actor.Role == models.RoleCourier && (o.CourierID == nil || *o.CourierID != actor.UserID) {
			return ErrForbidden
		}
		if (target == models.StatusCompleted || target == models.StatusReceived) &&
			!Allowed(actor.Role, OpComplete, o.Type) {
			return ErrForbidden
		}
		if target == models.StatusVoided && !Allowed(actor.Role, OpVoid, o.Type) {
			return ErrForbidden
		}
		if courierID != nil && !Allowed(actor.Role, OpAssignCourier, o.Type) {
			return ErrForbidden
		}

		old := o.Status
		o.Status = target
		if courierID != nil {
			o.CourierID = courierID
		}

		now := time.Now()
		switch target {
		case models.StatusCompleted:
			o.CompletedAt = &now
		case models.StatusVoided:
			o.Voided = true
			o.VoidReason = strings.TrimSpace(reason)
			o.VoidedByID = &actor.UserID
			o.VoidedAt = &now
		}

		if err := tx.SaveOrder(o); err != nil {
			return err
		}

		// Lager se menja isključivo ovde, čuvan uslovom old != ZAVRSENA:
		// ponovljen zahtev za isti prelaz pada na proveri istog statusa,
		// pa efekat na lager ostaje tačno jedan.
		if target == models.StatusCompleted && old != models.StatusCompleted {
			for _, it := range o.Items {
				delta := it.Quantity
				if o.Type == models.OrderTypeSale {
					delta = -it.Quantity
				}
				if _, err := tx.AdjustStock(it.ProductID, delta); err != nil {
					return err
				}
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetOrder: detalji sa stavkama; dostavljač vidi samo svoje.
func (s *Service) GetOrder(actor Actor, orderID uint) (*models.Order, error) {
	o, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleCourier && (o.CourierID == nil || *o.CourierID != actor.UserID) {
		return nil, ErrForbidden
	}
	return o, nil
}

// ListOrders: sve narudžbenice; dostavljaču se lista sužava na
// dodeljene.
func (s *Service) ListOrders(actor Actor) ([]models.Order, error) {
	if actor.Role == models.RoleCourier {
		id := actor.UserID
		return s.store.ListOrders(&id)
	}
	return s.store.ListOrders(nil)
}

// DeleteOrder: samo vlasnik i samo narudžbenice koje su još u statusu
// KREIRANA; stavke i zaglavlje se brišu u istoj transakciji.
func (s *Service) DeleteOrder(actor Actor, orderID uint) error {
	if !Allowed(actor.Role, OpDelete, "") {
		return ErrForbidden
	}
	return s.store.Transaction(func(tx Store) error {
		o, err := tx.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}
		if o.Status != models.StatusCreated {
			return ErrNotDeletable
		}
		return tx.DeleteOrder(orderID)
	})
}
