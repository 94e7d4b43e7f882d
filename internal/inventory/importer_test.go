package inventory

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return &buf
}

func TestParseProductSheet(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Šifra", "Naziv", "JM", "Nabavna", "Prodajna", "Količina"},
		{"P-001", "Brašno T-400", "kg", 45.50, 60, 120},
		{"P-002", "Šećer", "kg", "50,00", "72,50", ""},
	})

	rows, problems, err := ParseProductSheet(buf)
	if err != nil {
		t.Fatalf("ParseProductSheet: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("problems = %v", problems)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d", len(rows))
	}

	if rows[0].Sifra != "P-001" || rows[0].Naziv != "Brašno T-400" || rows[0].JedinicaMere != "kg" {
		t.Errorf("red 1 = %+v", rows[0])
	}
	if rows[0].NabavnaCena != 45.5 || rows[0].ProdajnaCena != 60 || rows[0].Kolicina != 120 {
		t.Errorf("red 1 cene = %+v", rows[0])
	}

	// zapeta kao decimalni separator, prazna količina
	if rows[1].NabavnaCena != 50 || rows[1].ProdajnaCena != 72.5 || rows[1].Kolicina != 0 {
		t.Errorf("red 2 = %+v", rows[1])
	}
}

func TestParseProductSheetWithoutHeader(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"P-010", "Ulje", "l", 140, 165, 10},
	})

	rows, problems, err := ParseProductSheet(buf)
	if err != nil {
		t.Fatalf("ParseProductSheet: %v", err)
	}
	if len(problems) != 0 || len(rows) != 1 {
		t.Fatalf("rows = %d, problems = %v", len(rows), problems)
	}
	if rows[0].Sifra != "P-010" {
		t.Errorf("Sifra = %q", rows[0].Sifra)
	}
}

func TestParseProductSheetBadRows(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"ŠIFRA", "NAZIV", "JM", "NABAVNA", "PRODAJNA", "KOLIČINA"},
		{"", "Bez šifre", "kom", 10, 20, 1},
		{"P-020", "", "kom", 10, 20, 1},
		{"P-021", "Skuplja nabavna", "kom", 20, 10, 1},
		{"P-022", "Nije broj", "kom", "abc", 20, 1},
		{"P-023", "Negativna količina", "kom", 10, 20, -5},
		{"P-024", "Validan", "kom", 10, 20, 3},
	})

	rows, problems, err := ParseProductSheet(buf)
	if err != nil {
		t.Fatalf("ParseProductSheet: %v", err)
	}
	if len(rows) != 1 || rows[0].Sifra != "P-024" {
		t.Fatalf("rows = %+v", rows)
	}
	if len(problems) != 5 {
		t.Fatalf("problems = %v", problems)
	}
	// svaka greška navodi broj reda iz fajla
	for i, p := range problems {
		if want := fmt.Sprintf("red %d:", i+2); !strings.HasPrefix(p, want) {
			t.Errorf("problem %d = %q, želim prefiks %q", i, p, want)
		}
	}
}

func TestParseProductSheetEmptyFile(t *testing.T) {
	if _, _, err := ParseProductSheet(bytes.NewReader([]byte("nije xlsx"))); err == nil {
		t.Fatal("očekivana greška za fajl koji nije XLSX")
	}
}
