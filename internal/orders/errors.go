package orders

import (
	"errors"
	"fmt"

	"magacin-backend/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("narudžbenica nije pronađena")
	ErrProductNotFound   = errors.New("proizvod nije pronađen")
	ErrSameStatus        = errors.New("narudžbenica je već u tom statusu")
	ErrUnknownStatus     = errors.New("nevalidan status")
	ErrReasonRequired    = errors.New("razlog storniranja je obavezan")
	ErrForbidden         = errors.New("nemate pristup")
	ErrInvalidType       = errors.New("tip mora biti NABAVKA ili PRODAJA")
	ErrNoItems           = errors.New("narudžbenica mora imati bar jednu stavku")
	ErrInvalidItem       = errors.New("svaka stavka mora imati proizvod i količinu veću od 0")
	ErrSupplierRequired  = errors.New("dobavljač je obavezan za NABAVKU")
	ErrSupplierForbidden = errors.New("dobavljač se ne navodi za PRODAJU")
	ErrNotDeletable      = errors.New("mogu da se brišu samo narudžbenice u statusu KREIRANA")
)

// InvalidTransitionError: traženi prelaz nije u tabeli za dati tip;
// poruka navodi dozvoljene ciljne statuse.
type InvalidTransitionError struct {
	Tip     models.OrderType
	From    models.OrderStatus
	To      models.OrderStatus
	Allowed []models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("prelaz iz statusa %s nije dozvoljen za tip %s (status je konačan)", e.From, e.Tip)
	}
	return fmt.Sprintf("prelaz %s -> %s nije dozvoljen za tip %s (dozvoljeni: %s)",
		e.From, e.To, e.Tip, joinStatuses(e.Allowed))
}

func joinStatuses(ss []models.OrderStatus) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += string(s)
	}
	return out
}

// InsufficientStockError: na lageru nema dovoljno proizvoda za stavku
// prodajne narudžbenice.
type InsufficientStockError struct {
	ProductID uint
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("nema dovoljno lagera za proizvod %d (na stanju %d, traženo %d)",
		e.ProductID, e.Available, e.Requested)
}
