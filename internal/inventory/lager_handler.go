package inventory

import (
	"magacin-backend/internal/config"
	"magacin-backend/internal/database"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LagerItemResponse struct {
	ProizvodID     uint   `json:"proizvod_id"`
	Naziv          string `json:"naziv"`
	Sifra          string `json:"sifra"`
	KolicinaStanje int    `json:"kolicina_na_stanju"`
	MinKolicina    int    `json:"minimalna_kolicina"`
	JedinicaMere   string `json:"jedinica_mere"`
	Kriticno       bool   `json:"kriticno"`
}

// lowStockLimit: prag ispod koga je proizvod kritičan. Proizvod sa
// postavljenom minimalnom količinom koristi nju, ostali globalni prag.
func lowStockLimit(p *models.Product, cfg *config.Config) int {
	if p.MinQuantity > 0 {
		return p.MinQuantity
	}
	return cfg.LowStockThreshold
}

// GET /api/lager (vlasnik i radnik)
func LagerHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lager ne može da se učita")
		}

		res := make([]LagerItemResponse, 0, len(products))
		for i := range products {
			p := &products[i]
			res = append(res, LagerItemResponse{
				ProizvodID:     p.ID,
				Naziv:          p.Name,
				Sifra:          p.Code,
				KolicinaStanje: p.StockQuantity,
				MinKolicina:    p.MinQuantity,
				JedinicaMere:   p.Unit,
				Kriticno:       p.StockQuantity <= lowStockLimit(p, cfg),
			})
		}
		return c.JSON(res)
	}
}

// GET /api/lager/obavestenja (vlasnik i radnik)
// Samo proizvodi na kritičnom stanju.
func LowStockHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("stock_quantity asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lager ne može da se učita")
		}

		res := make([]LagerItemResponse, 0)
		for i := range products {
			p := &products[i]
			limit := lowStockLimit(p, cfg)
			if p.StockQuantity > limit {
				continue
			}
			res = append(res, LagerItemResponse{
				ProizvodID:     p.ID,
				Naziv:          p.Name,
				Sifra:          p.Code,
				KolicinaStanje: p.StockQuantity,
				MinKolicina:    p.MinQuantity,
				JedinicaMere:   p.Unit,
				Kriticno:       true,
			})
		}
		return c.JSON(res)
	}
}
