package inventory

import (
	"log"
	"strings"

	"magacin-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

// POST /api/proizvodi/uvoz (samo vlasnik)
// Uvoz proizvoda iz XLSX fajla, polje forme "file".
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fajl nije priložen")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Dozvoljeni su samo .xlsx fajlovi")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fajl ne može da se otvori")
		}
		defer file.Close()

		rows, problems, err := ParseProductSheet(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fajl ne sadrži nijedan validan red")
		}

		res, err := ImportProducts(database.DB, rows)
		if err != nil {
			log.Printf("uvoz proizvoda nije uspeo: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Uvoz nije uspeo, nijedan red nije upisan")
		}
		res.Greske = append(res.Greske, problems...)

		return c.JSON(res)
	}
}
