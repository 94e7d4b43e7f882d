package inventory

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"magacin-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportRow: jedan red iz XLSX fajla sa proizvodima.
// Kolone: šifra | naziv | jedinica mere | nabavna cena | prodajna cena | količina
type ImportRow struct {
	Sifra        string
	Naziv        string
	JedinicaMere string
	NabavnaCena  float64
	ProdajnaCena float64
	Kolicina     int
}

type ImportResult struct {
	Dodato    int      `json:"dodato"`
	Izmenjeno int      `json:"izmenjeno"`
	Greske    []string `json:"greske"`
}

// ParseProductSheet čita prvi sheet i vraća validne redove. Redovi sa
// greškom se ne prekidaju, prijavljuju se sa brojem reda.
func ParseProductSheet(r io.Reader) ([]ImportRow, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("XLSX fajl ne može da se otvori: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("XLSX fajl nema nijedan sheet")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("sheet ne može da se pročita: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("XLSX fajl je prazan")
	}

	start := 0
	if isHeaderRow(rows[0]) {
		start = 1
	}

	var out []ImportRow
	var problems []string
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		parsed, err := parseRow(row)
		if err != nil {
			problems = append(problems, fmt.Sprintf("red %d: %v", i+1, err))
			continue
		}
		out = append(out, parsed)
	}
	return out, problems, nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(row[0]))
	return strings.Contains(first, "SIFRA") || strings.Contains(first, "ŠIFRA") ||
		strings.Contains(first, "NAZIV") || strings.Contains(first, "CODE")
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRow(row []string) (ImportRow, error) {
	out := ImportRow{
		Sifra:        cell(row, 0),
		Naziv:        cell(row, 1),
		JedinicaMere: cell(row, 2),
	}
	if out.Sifra == "" {
		return out, fmt.Errorf("šifra je obavezna")
	}
	if out.Naziv == "" {
		return out, fmt.Errorf("naziv je obavezan")
	}

	nabavna, err := parsePrice(cell(row, 3))
	if err != nil {
		return out, fmt.Errorf("nabavna cena: %v", err)
	}
	prodajna, err := parsePrice(cell(row, 4))
	if err != nil {
		return out, fmt.Errorf("prodajna cena: %v", err)
	}
	if prodajna <= nabavna {
		return out, fmt.Errorf("prodajna cena mora biti veća od nabavne")
	}
	out.NabavnaCena = nabavna
	out.ProdajnaCena = prodajna

	kolicinaStr := cell(row, 5)
	if kolicinaStr != "" {
		kolicina, err := strconv.Atoi(kolicinaStr)
		if err != nil || kolicina < 0 {
			return out, fmt.Errorf("količina mora biti ceo nenegativan broj")
		}
		out.Kolicina = kolicina
	}
	return out, nil
}

// parsePrice prihvata i zapete kao decimalni separator (izvoz iz
// lokalizovanog Excel-a).
func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("vrednost nedostaje")
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("nije broj: %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("mora biti veća od nule")
	}
	return v, nil
}

// ImportProducts upisuje redove u bazu. Postojeći proizvodi (po šifri)
// se ažuriraju, novi se dodaju, sve u jednoj transakciji.
func ImportProducts(db *gorm.DB, rows []ImportRow) (ImportResult, error) {
	res := ImportResult{Greske: make([]string, 0)}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var existing models.Product
			err := tx.Where("code = ?", row.Sifra).First(&existing).Error
			switch {
			case err == nil:
				existing.Name = row.Naziv
				existing.Unit = row.JedinicaMere
				existing.PurchasePrice = row.NabavnaCena
				existing.SalePrice = row.ProdajnaCena
				existing.StockQuantity += row.Kolicina
				if err := tx.Save(&existing).Error; err != nil {
					return fmt.Errorf("šifra %s: %w", row.Sifra, err)
				}
				res.Izmenjeno++
			case errors.Is(err, gorm.ErrRecordNotFound):
				p := models.Product{
					Name:          row.Naziv,
					Code:          row.Sifra,
					Unit:          row.JedinicaMere,
					PurchasePrice: row.NabavnaCena,
					SalePrice:     row.ProdajnaCena,
					StockQuantity: row.Kolicina,
				}
				if err := tx.Create(&p).Error; err != nil {
					return fmt.Errorf("šifra %s: %w", row.Sifra, err)
				}
				res.Dodato++
			default:
				return fmt.Errorf("šifra %s: %w", row.Sifra, err)
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}
