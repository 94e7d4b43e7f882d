package dashboard

import (
	"time"

	"magacin-backend/internal/database"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProfitPoint struct {
	Datum   string  `json:"datum"`
	Prihod  float64 `json:"prihod"`
	Trosak  float64 `json:"trosak"`
	Zarada  float64 `json:"zarada"`
	Prodaja int64   `json:"broj_prodaja"`
}

type TopProduct struct {
	ProizvodID uint    `json:"proizvod_id"`
	Naziv      string  `json:"naziv"`
	Kolicina   int64   `json:"prodata_kolicina"`
	Prihod     float64 `json:"prihod"`
}

type ProfitResponse struct {
	Od           string        `json:"od"`
	Do           string        `json:"do"`
	UkupanPrihod float64       `json:"ukupan_prihod"`
	UkupanTrosak float64       `json:"ukupan_trosak"`
	UkupnaZarada float64       `json:"ukupna_zarada"`
	PoDanima     []ProfitPoint `json:"po_danima"`
	TopProizvodi []TopProduct  `json:"top_proizvodi"`
}

// GET /api/analitika/profit?dana=30 (samo vlasnik)
// Računa se samo ZAVRSENA PRODAJA; prihod po snimljenoj prodajnoj
// ceni stavke, trošak po tekućoj nabavnoj ceni proizvoda.
func ProfitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("dana", 30)
		if days <= 0 || days > 365 {
			return fiber.NewError(fiber.StatusBadRequest, "Parametar dana mora biti između 1 i 365")
		}

		now := time.Now()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		start := end.AddDate(0, 0, -days)

		type dayRow struct {
			Bucket time.Time `gorm:"column:bucket"`
			Income float64   `gorm:"column:income"`
			Cost   float64   `gorm:"column:cost"`
			Orders int64     `gorm:"column:orders"`
		}
		var dayRows []dayRow
		if err := database.DB.Raw(`
			SELECT o.completed_at::date AS bucket,
				   SUM(oi.total) AS income,
				   SUM(oi.quantity * p.purchase_price) AS cost,
				   COUNT(DISTINCT o.id) AS orders
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			JOIN products p ON p.id = oi.product_id
			WHERE o.type = ? AND o.status = ?
			  AND o.completed_at >= ? AND o.completed_at < ?
			GROUP BY bucket
			ORDER BY bucket ASC
		`, models.OrderTypeSale, models.StatusCompleted, start, end).Scan(&dayRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Zarada ne može da se izračuna")
		}

		type topRow struct {
			ProductID uint    `gorm:"column:product_id"`
			Name      string  `gorm:"column:name"`
			Quantity  int64   `gorm:"column:quantity"`
			Income    float64 `gorm:"column:income"`
		}
		var topRows []topRow
		if err := database.DB.Raw(`
			SELECT oi.product_id,
				   p.name,
				   SUM(oi.quantity) AS quantity,
				   SUM(oi.total) AS income
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			JOIN products p ON p.id = oi.product_id
			WHERE o.type = ? AND o.status = ?
			  AND o.completed_at >= ? AND o.completed_at < ?
			GROUP BY oi.product_id, p.name
			ORDER BY income DESC
			LIMIT 5
		`, models.OrderTypeSale, models.StatusCompleted, start, end).Scan(&topRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Zarada ne može da se izračuna")
		}

		res := ProfitResponse{
			Od:           start.Format("2006-01-02"),
			Do:           end.AddDate(0, 0, -1).Format("2006-01-02"),
			PoDanima:     make([]ProfitPoint, 0, len(dayRows)),
			TopProizvodi: make([]TopProduct, 0, len(topRows)),
		}
		for _, r := range dayRows {
			res.PoDanima = append(res.PoDanima, ProfitPoint{
				Datum:   r.Bucket.Format("2006-01-02"),
				Prihod:  r.Income,
				Trosak:  r.Cost,
				Zarada:  r.Income - r.Cost,
				Prodaja: r.Orders,
			})
			res.UkupanPrihod += r.Income
			res.UkupanTrosak += r.Cost
		}
		res.UkupnaZarada = res.UkupanPrihod - res.UkupanTrosak

		for _, r := range topRows {
			res.TopProizvodi = append(res.TopProizvodi, TopProduct{
				ProizvodID: r.ProductID,
				Naziv:      r.Name,
				Kolicina:   r.Quantity,
				Prihod:     r.Income,
			})
		}

		return c.JSON(res)
	}
}
