package supplier

import (
	"strings"

	"magacin-backend/internal/database"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSupplierRequest struct {
	NazivFirme string `json:"naziv_firme"`
	Telefon    string `json:"telefon"`
	Email      string `json:"email"`
	Adresa     string `json:"adresa"`
}

type SupplierResponse struct {
	ID         uint   `json:"id"`
	NazivFirme string `json:"naziv_firme"`
	Telefon    string `json:"telefon"`
	Email      string `json:"email"`
	Adresa     string `json:"adresa"`
}

func toSupplierResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:         s.ID,
		NazivFirme: s.CompanyName,
		Telefon:    s.Phone,
		Email:      s.Email,
		Adresa:     s.Address,
	}
}

// GET /api/dobavljaci
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("company_name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dobavljači ne mogu da se učitaju")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			res = append(res, toSupplierResponse(&suppliers[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/dobavljaci (samo vlasnik)
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan JSON body")
		}

		body.NazivFirme = strings.TrimSpace(body.NazivFirme)
		if body.NazivFirme == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Naziv firme je obavezan")
		}

		s := models.Supplier{
			CompanyName: body.NazivFirme,
			Phone:       strings.TrimSpace(body.Telefon),
			Email:       strings.TrimSpace(body.Email),
			Address:     strings.TrimSpace(body.Adresa),
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dobavljač ne može da se sačuva")
		}

		return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(&s))
	}
}

// DELETE /api/dobavljaci/:id (samo vlasnik)
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Supplier
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dobavljač nije pronađen")
		}

		// Dobavljač sa narudžbenicama ostaje zbog istorije
		var count int64
		database.DB.Model(&models.Order{}).Where("supplier_id = ?", s.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Dobavljač ima narudžbenice i ne može da se obriše")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dobavljač ne može da se obriše")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
