package inventory

import (
	"errors"
	"strings"

	"magacin-backend/internal/database"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductResponse struct {
	ID             uint    `json:"id"`
	Naziv          string  `json:"naziv"`
	Sifra          string  `json:"sifra"`
	NabavnaCena    float64 `json:"nabavna_cena"`
	ProdajnaCena   float64 `json:"prodajna_cena"`
	KolicinaStanje int     `json:"kolicina_na_stanju"`
	MinKolicina    int     `json:"minimalna_kolicina"`
	JedinicaMere   string  `json:"jedinica_mere"`
}

type CreateProductRequest struct {
	Naziv        string  `json:"naziv"`
	Sifra        string  `json:"sifra"`
	NabavnaCena  float64 `json:"nabavna_cena"`
	ProdajnaCena float64 `json:"prodajna_cena"`
	Kolicina     int     `json:"kolicina_na_stanju"`
	MinKolicina  int     `json:"minimalna_kolicina"`
	JedinicaMere string  `json:"jedinica_mere"`
}

type UpdateProductRequest struct {
	Naziv        *string  `json:"naziv"`
	ProdajnaCena *float64 `json:"prodajna_cena"`
	MinKolicina  *int     `json:"minimalna_kolicina"`
	JedinicaMere *string  `json:"jedinica_mere"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Naziv:          p.Name,
		Sifra:          p.Code,
		NabavnaCena:    p.PurchasePrice,
		ProdajnaCena:   p.SalePrice,
		KolicinaStanje: p.StockQuantity,
		MinKolicina:    p.MinQuantity,
		JedinicaMere:   p.Unit,
	}
}

// GET /api/proizvodi
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proizvodi ne mogu da se učitaju")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/proizvodi/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proizvod nije pronađen")
		}
		return c.JSON(toProductResponse(&p))
	}
}

// POST /api/proizvodi (samo vlasnik)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan JSON body")
		}

		body.Naziv = strings.TrimSpace(body.Naziv)
		body.Sifra = strings.TrimSpace(body.Sifra)
		body.JedinicaMere = strings.TrimSpace(body.JedinicaMere)

		if body.Naziv == "" || body.Sifra == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Naziv i šifra su obavezni")
		}
		if body.NabavnaCena <= 0 || body.ProdajnaCena <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cene moraju biti veće od nule")
		}
		if body.ProdajnaCena <= body.NabavnaCena {
			return fiber.NewError(fiber.StatusBadRequest, "Prodajna cena mora biti veća od nabavne")
		}
		if body.Kolicina < 0 || body.MinKolicina < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Količine ne mogu biti negativne")
		}

		var existing models.Product
		if err := database.DB.Where("code = ?", body.Sifra).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Proizvod sa ovom šifrom već postoji")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Greška pri proveri šifre")
		}

		p := models.Product{
			Name:          body.Naziv,
			Code:          body.Sifra,
			PurchasePrice: body.NabavnaCena,
			SalePrice:     body.ProdajnaCena,
			StockQuantity: body.Kolicina,
			MinQuantity:   body.MinKolicina,
			Unit:          body.JedinicaMere,
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proizvod ne može da se sačuva")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&p))
	}
}

// PUT /api/proizvodi/:id (samo vlasnik)
// Nabavna cena i stanje se ne menjaju ovde. Stanje menja samo
// završetak narudžbenice, nabavna cena nova nabavka.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proizvod nije pronađen")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan JSON body")
		}

		if body.Naziv != nil {
			naziv := strings.TrimSpace(*body.Naziv)
			if naziv == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Naziv ne može biti prazan")
			}
			p.Name = naziv
		}
		if body.ProdajnaCena != nil {
			if *body.ProdajnaCena <= p.PurchasePrice {
				return fiber.NewError(fiber.StatusBadRequest, "Prodajna cena mora biti veća od nabavne")
			}
			p.SalePrice = *body.ProdajnaCena
		}
		if body.MinKolicina != nil {
			if *body.MinKolicina < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Minimalna količina ne može biti negativna")
			}
			p.MinQuantity = *body.MinKolicina
		}
		if body.JedinicaMere != nil {
			p.Unit = strings.TrimSpace(*body.JedinicaMere)
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proizvod ne može da se izmeni")
		}
		return c.JSON(toProductResponse(&p))
	}
}

// DELETE /api/proizvodi/:id (samo vlasnik)
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proizvod nije pronađen")
		}

		// Proizvod sa stavkama narudžbenica se ne briše, istorija mora da ostane
		var count int64
		database.DB.Model(&models.OrderItem{}).Where("product_id = ?", p.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Proizvod se nalazi na narudžbenicama i ne može da se obriše")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proizvod ne može da se obriše")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
