package orders

import (
	"errors"
	"time"

	"magacin-backend/internal/auth"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	Tip          string             `json:"tip"`  // NABAVKA | PRODAJA
	Type         string             `json:"type"` // stariji klijenti šalju "type"
	DobavljacID  *uint              `json:"dobavljac_id"`
	DostavljacID *uint              `json:"dostavljac_id"`
	Napomena     string             `json:"napomena"`
	Stavke       []OrderItemRequest `json:"stavke"`
}

type OrderItemRequest struct {
	ProizvodID uint `json:"proizvod_id"`
	Kolicina   int  `json:"kolicina"`
}

type ChangeStatusRequest struct {
	Status            string `json:"status"`
	RazlogStorniranja string `json:"razlog_storniranja"`
	DostavljacID      *uint  `json:"dostavljac_id"` // samo vlasnik sme da dodeli
}

type OrderResponse struct {
	ID             uint       `json:"id_narudzbenica"`
	Tip            string     `json:"tip"`
	Status         string     `json:"status"`
	UkupnaVrednost float64    `json:"ukupna_vrednost"`
	Napomena       string     `json:"napomena,omitempty"`
	DobavljacID    *uint      `json:"dobavljac_id,omitempty"`
	DobavljacNaziv string     `json:"dobavljac_naziv,omitempty"`
	DostavljacID   *uint      `json:"dostavljac_id,omitempty"`
	KreiraoEmail   string     `json:"kreirao_email,omitempty"`
	Stornirana     bool       `json:"stornirana"`
	DatumKreiranja time.Time  `json:"datum_kreiranja"`
	DatumZavrsetka *time.Time `json:"datum_zavrsetka"`
}

type OrderItemResponse struct {
	ID            uint    `json:"id_stavka"`
	ProizvodID    uint    `json:"proizvod_id"`
	ProizvodNaziv string  `json:"proizvod_naziv,omitempty"`
	Kolicina      int     `json:"kolicina"`
	ProdajnaCena  float64 `json:"prodajna_cena"`
	UkupnaCena    float64 `json:"ukupna_cena"`
}

type OrderDetailResponse struct {
	OrderResponse
	RazlogStorniranja string              `json:"razlog_storniranja,omitempty"`
	Stavke            []OrderItemResponse `json:"stavke"`
}

func actorFromContext(c *fiber.Ctx) (Actor, error) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Nemate pristup")
	}
	role, ok := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
	if !ok {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Nemate pristup")
	}
	return Actor{UserID: userID, Role: role}, nil
}

// httpError prevodi greške servisa u HTTP statuse (taksonomija:
// validacija i konflikt stanja -> 400, pristup -> 403, nepostojeća
// narudžbenica -> 404, sve ostalo -> 500 kroz centralni ErrorHandler).
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrSameStatus),
		errors.Is(err, ErrUnknownStatus),
		errors.Is(err, ErrReasonRequired),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrNoItems),
		errors.Is(err, ErrInvalidItem),
		errors.Is(err, ErrSupplierRequired),
		errors.Is(err, ErrSupplierForbidden),
		errors.Is(err, ErrNotDeletable):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var invalidTransition *InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var insufficientStock *InsufficientStockError
	if errors.As(err, &insufficientStock) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err
}

func toOrderResponse(o *models.Order) OrderResponse {
	res := OrderResponse{
		ID:             o.ID,
		Tip:            string(o.Type),
		Status:         string(o.Status),
		UkupnaVrednost: o.Total,
		Napomena:       o.Note,
		DobavljacID:    o.SupplierID,
		DostavljacID:   o.CourierID,
		Stornirana:     o.Voided,
		DatumKreiranja: o.CreatedAt,
		DatumZavrsetka: o.CompletedAt,
	}
	if o.Supplier != nil {
		res.DobavljacNaziv = o.Supplier.CompanyName
	}
	if o.CreatedBy != nil {
		res.KreiraoEmail = o.CreatedBy.Email
	}
	return res
}

// POST /api/narudzbenice
func CreateOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromContext(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan JSON body")
		}
		if body.Tip == "" {
			body.Tip = body.Type
		}

		in := NewOrder{
			Type:       models.OrderType(body.Tip),
			SupplierID: body.DobavljacID,
			CourierID:  body.DostavljacID,
			Note:       body.Napomena,
		}
		for _, s := range body.Stavke {
			in.Items = append(in.Items, NewOrderItem{ProductID: s.ProizvodID, Quantity: s.Kolicina})
		}

		order, err := svc.CreateOrder(actor, in)
		if err != nil {
			return httpError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id_narudzbenica": order.ID,
			"tip":             order.Type,
			"status":          order.Status,
			"ukupna_vrednost": order.Total,
			"datum_kreiranja": order.CreatedAt,
		})
	}
}

// PATCH /api/narudzbenice/:id/status
func ChangeStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromContext(c)
		if err != nil {
			return err
		}

		orderID, err := c.ParamsInt("id")
		if err != nil || orderID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan ID")
		}

		var body ChangeStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan JSON body")
		}

		order, err := svc.ChangeStatus(actor, uint(orderID), models.OrderStatus(body.Status), body.RazlogStorniranja, body.DostavljacID)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(fiber.Map{
			"id_narudzbenica": order.ID,
			"status":          order.Status,
			"datum_zavrsetka": order.CompletedAt,
			"stornirana":      order.Voided,
		})
	}
}

// GET /api/narudzbenice
func ListOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromContext(c)
		if err != nil {
			return err
		}

		orders, err := svc.ListOrders(actor)
		if err != nil {
			return httpError(err)
		}

		res := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			res = append(res, toOrderResponse(&orders[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/narudzbenice/:id
func GetOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromContext(c)
		if err != nil {
			return err
		}

		orderID, err := c.ParamsInt("id")
		if err != nil || orderID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan ID")
		}

		order, err := svc.GetOrder(actor, uint(orderID))
		if err != nil {
			return httpError(err)
		}

		detail := OrderDetailResponse{
			OrderResponse:     toOrderResponse(order),
			RazlogStorniranja: order.VoidReason,
			Stavke:            make([]OrderItemResponse, 0, len(order.Items)),
		}
		for _, it := range order.Items {
			detail.Stavke = append(detail.Stavke, OrderItemResponse{
				ID:            it.ID,
				ProizvodID:    it.ProductID,
				ProizvodNaziv: it.Product.Name,
				Kolicina:      it.Quantity,
				ProdajnaCena:  it.UnitPrice,
				UkupnaCena:    it.Total,
			})
		}
		return c.JSON(detail)
	}
}

// DELETE /api/narudzbenice/:id
func DeleteOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromContext(c)
		if err != nil {
			return err
		}

		orderID, err := c.ParamsInt("id")
		if err != nil || orderID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan ID")
		}

		if err := svc.DeleteOrder(actor, uint(orderID)); err != nil {
			return httpError(err)
		}

		return c.JSON(fiber.Map{"message": "Narudžbenica obrisana"})
	}
}
