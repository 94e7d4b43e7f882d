package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"magacin-backend/internal/auth"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// newTestApp: aplikacija sa rutama jezgra i lažnim identitetom umesto
// JWT middleware-a.
func newTestApp(svc *Service, actor Actor) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Neočekivana greška servera"})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, actor.UserID)
		c.Locals(auth.CtxUserRoleKey, actor.Role)
		return c.Next()
	})
	api := app.Group("/api")
	api.Post("/narudzbenice", CreateOrderHandler(svc))
	api.Get("/narudzbenice", ListOrdersHandler(svc))
	api.Get("/narudzbenice/:id", GetOrderHandler(svc))
	api.Patch("/narudzbenice/:id/status", ChangeStatusHandler(svc))
	api.Delete("/narudzbenice/:id", DeleteOrderHandler(svc))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func TestCreateOrderEndpoint(t *testing.T) {
	svc, store := newTestService()
	p := testProduct(store, 10, 100)
	app := newTestApp(svc, vlasnikActor)

	code, body := doJSON(t, app, "POST", "/api/narudzbenice", map[string]any{
		"tip": "PRODAJA",
		"stavke": []map[string]any{
			{"proizvod_id": p, "kolicina": 2},
		},
	})
	if code != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %v", code, body)
	}
	if body["status"] != "KREIRANA" {
		t.Errorf("status polja = %v", body["status"])
	}
	if body["ukupna_vrednost"] != float64(200) {
		t.Errorf("ukupna_vrednost = %v", body["ukupna_vrednost"])
	}

	// stariji ključ "type" umesto "tip"
	code, body = doJSON(t, app, "POST", "/api/narudzbenice", map[string]any{
		"type": "PRODAJA",
		"stavke": []map[string]any{
			{"proizvod_id": p, "kolicina": 1},
		},
	})
	if code != fiber.StatusCreated {
		t.Fatalf("type alias: status = %d, body = %v", code, body)
	}
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	svc, store := newTestService()
	p := testProduct(store, 10, 100)
	app := newTestApp(svc, vlasnikActor)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"nepoznat tip", map[string]any{"tip": "X", "stavke": []map[string]any{{"proizvod_id": p, "kolicina": 1}}}},
		{"bez stavki", map[string]any{"tip": "PRODAJA", "stavke": []map[string]any{}}},
		{"kolicina nula", map[string]any{"tip": "PRODAJA", "stavke": []map[string]any{{"proizvod_id": p, "kolicina": 0}}}},
		{"nabavka bez dobavljaca", map[string]any{"tip": "NABAVKA", "stavke": []map[string]any{{"proizvod_id": p, "kolicina": 1}}}},
		{"prodaja sa dobavljacem", map[string]any{"tip": "PRODAJA", "dobavljac_id": 1, "stavke": []map[string]any{{"proizvod_id": p, "kolicina": 1}}}},
		{"nepoznat proizvod", map[string]any{"tip": "PRODAJA", "stavke": []map[string]any{{"proizvod_id": 999, "kolicina": 1}}}},
	}
	for _, c := range cases {
		if code, body := doJSON(t, app, "POST", "/api/narudzbenice", c.body); code != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d, body = %v", c.name, code, body)
		}
	}
}

func TestCreateOrderEndpointForbidden(t *testing.T) {
	svc, store := newTestService()
	p := testProduct(store, 10, 100)
	app := newTestApp(svc, dostavljacActor)

	code, _ := doJSON(t, app, "POST", "/api/narudzbenice", map[string]any{
		"tip":    "PRODAJA",
		"stavke": []map[string]any{{"proizvod_id": p, "kolicina": 1}},
	})
	if code != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
}

func TestChangeStatusEndpoint(t *testing.T) {
	svc, store := newTestService()
	p := testProduct(store, 10, 100)
	app := newTestApp(svc, vlasnikActor)

	o, _ := svc.CreateOrder(vlasnikActor, NewOrder{
		Type:  models.OrderTypeSale,
		Items: []NewOrderItem{{ProductID: p, Quantity: 4}},
	})

	code, body := doJSON(t, app, "PATCH", fmt.Sprintf("/api/narudzbenice/%d/status", o.ID), map[string]any{
		"status": "ZAVRSENA",
	})
	if code != fiber.StatusOK {
		t.Fatalf("status = %d, body = %v", code, body)
	}
	if body["status"] != "ZAVRSENA" {
		t.Errorf("status polja = %v", body["status"])
	}
	if body["datum_zavrsetka"] == nil {
		t.Error("datum_zavrsetka nije upisan")
	}
	if store.stock(p) != 6 {
		t.Errorf("lager = %d, want 6", store.stock(p))
	}

	// isti status ponovo -> 400
	if code, _ := doJSON(t, app, "PATCH", fmt.Sprintf("/api/narudzbenice/%d/status", o.ID), map[string]any{
		"status": "ZAVRSENA",
	}); code != fiber.StatusBadRequest {
		t.Errorf("ponovljeni status: %d, want 400", code)
	}
}

func TestChangeStatusEndpointErrors(t *testing.T) {
	svc, store := newTestService()
	p := testProduct(store, 3, 100)
	app := newTestApp(svc, vlasnikActor)

	o, _ := svc.CreateOrder(vlasnikActor, NewOrder{
		Type:  models.OrderTypeSale,
		Items: []NewOrderItem{{ProductID: p, Quantity: 5}},
	})

	// nepoznat status
	if code, _ := doJSON(t, app, "PATCH", fmt.Sprintf("/api/narudzbenice/%d/status", o.ID), map[string]any{
		"status": "NEPOSTOJECI",
	}); code != fiber.StatusBadRequest {
		t.Errorf("nepoznat status: %d", code)
	}

	// nedozvoljeni prelaz navodi dozvoljene statuse
	code, body := doJSON(t, app, "PATCH", fmt.Sprintf("/api/narudzbenice/%d/status", o.ID), map[string]any{
		"status": "U_TRANSPORTU",
	})
	if code != fiber.StatusBadRequest {
		t.Errorf("nedozvoljeni prelaz: %d", code)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "STORNIRANA") || !strings.Contains(msg, "ZAVRSENA") {
		t.Errorf("poruka ne navodi dozvoljene statuse: %q", msg)
	}

	// storniranje bez razloga
	if code, _ := doJSON(t, app, "PATCH", fmt.Sprintf("/api/narudzbenice/%d/status", o.ID), map[string]any{
		"status": "STORNIRANA",
	}); code != fiber.StatusBadRequest {
		t.Errorf("storno bez razloga: %d", code)
	}

	// nedovoljan lager (kreirana je sa 5, na stanju 3)
	code, body = doJSON(t, app, "PATCH", fmt.Sprintf("/api/narudzbenice/%d/status", o.ID), map[string]any{
		"status": "ZAVRSENA",
	})
	if code != fiber.StatusBadRequest {
		t.Errorf("nedovoljan lager: %d", code)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "lagera") {
		t.Errorf("poruka o lageru: %q", msg)
	}
	if store.stock(p) != 3 {
		t.Errorf("lager = %d, want 3", store.stock(p))
	}

	// nepostojeća narudžbenica
	if code, _ := doJSON(t, app, "PATCH", "/api/narudzbenice/999/status", map[string]any{
		"status": "ZAVRSENA",
	}); code != fiber.StatusNotFound {
		t.Errorf("nepostojeća: %d, want 404", code)
	}
}

func TestGetOrderEndpointCourier(t *testing.T) {
	svc, store := newTestService()
	p := testProduct(store, 10, 100)

	o, _ := svc.CreateOrder(vlasnikActor, NewOrder{
		Type:  models.OrderTypeSale,
		Items: []NewOrderItem{{ProductID: p, Quantity: 1}},
	})

	app := newTestApp(svc, dostavljacActor)
	if code, _ := doJSON(t, app, "GET", fmt.Sprintf("/api/narudzbenice/%d", o.ID), nil); code != fiber.StatusForbidden {
		t.Fatalf("dostavljac tuđa narudžbenica: %d, want 403", code)
	}
}
