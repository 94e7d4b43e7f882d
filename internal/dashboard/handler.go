package dashboard

import (
	"magacin-backend/internal/config"
	"magacin-backend/internal/database"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DashboardResponse struct {
	BrojProizvoda       int64            `json:"broj_proizvoda"`
	BrojDobavljaca      int64            `json:"broj_dobavljaca"`
	KriticniProizvodi   int64            `json:"kriticni_proizvodi"`
	VrednostLagera      float64          `json:"vrednost_lagera"`
	NarudzbenicePoTipu  map[string]int64 `json:"narudzbenice_po_tipu"`
	AktivneNarudzbenice int64            `json:"aktivne_narudzbenice"`
	PoslednjeIzmene     []RecentOrder    `json:"poslednje_izmene"`
}

type RecentOrder struct {
	ID             uint    `json:"id_narudzbenica"`
	Tip            string  `json:"tip"`
	Status         string  `json:"status"`
	UkupnaVrednost float64 `json:"ukupna_vrednost"`
}

// GET /api/dashboard (samo vlasnik)
func DashboardHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := DashboardResponse{
			NarudzbenicePoTipu: map[string]int64{},
			PoslednjeIzmene:    make([]RecentOrder, 0, 5),
		}

		if err := database.DB.Model(&models.Product{}).Count(&res.BrojProizvoda).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podaci ne mogu da se izračunaju")
		}
		if err := database.DB.Model(&models.Supplier{}).Count(&res.BrojDobavljaca).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podaci ne mogu da se izračunaju")
		}

		// Kritično stanje: ispod minimalne količine proizvoda, odnosno
		// ispod globalnog praga za proizvode bez minimalne količine.
		if err := database.DB.Model(&models.Product{}).
			Where("(min_quantity > 0 AND stock_quantity <= min_quantity) OR (min_quantity = 0 AND stock_quantity <= ?)", cfg.LowStockThreshold).
			Count(&res.KriticniProizvodi).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podaci ne mogu da se izračunaju")
		}

		// Vrednost lagera po nabavnim cenama
		type valueRow struct {
			Total float64 `gorm:"column:total"`
		}
		var vr valueRow
		if err := database.DB.Raw(
			`SELECT COALESCE(SUM(stock_quantity * purchase_price), 0) AS total FROM products`,
		).Scan(&vr).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podaci ne mogu da se izračunaju")
		}
		res.VrednostLagera = vr.Total

		type typeRow struct {
			Type  string `gorm:"column:type"`
			Count int64  `gorm:"column:count"`
		}
		var byType []typeRow
		if err := database.DB.Model(&models.Order{}).
			Select("type, COUNT(*) AS count").
			Group("type").
			Scan(&byType).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podaci ne mogu da se izračunaju")
		}
		for _, r := range byType {
			res.NarudzbenicePoTipu[r.Type] = r.Count
		}

		if err := database.DB.Model(&models.Order{}).
			Where("status NOT IN ?", []models.OrderStatus{
				models.StatusCompleted, models.StatusCancelled, models.StatusVoided,
			}).
			Count(&res.AktivneNarudzbenice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podaci ne mogu da se izračunaju")
		}

		var recent []models.Order
		if err := database.DB.Order("updated_at desc").Limit(5).Find(&recent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podaci ne mogu da se izračunaju")
		}
		for _, o := range recent {
			res.PoslednjeIzmene = append(res.PoslednjeIzmene, RecentOrder{
				ID:             o.ID,
				Tip:            string(o.Type),
				Status:         string(o.Status),
				UkupnaVrednost: o.Total,
			})
		}

		return c.JSON(res)
	}
}
