package parser

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"

	"github.com/xuri/excelize/v2"
)

func TestExtractGrid(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Реестр сертификатов GMP")
	f.SetCellValue(sheetName, "A3", "Производитель")
	f.SetCellValue(sheetName, "B3", "Перечень продукции")
	f.SetCellValue(sheetName, "A4", "MSD")
	f.SetCellValue(sheetName, "B4", "Нобивак")

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	rows, err := ExtractGrid(f2, sheetName)
	if err != nil {
		t.Fatalf("ExtractGrid failed: %v", err)
	}

	// Title and blank rows are kept as plain data
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Реестр сертификатов GMP" {
		t.Errorf("Expected title in first row, got %q", rows[0][0])
	}
	if rows[2][1] != "Перечень продукции" {
		t.Errorf("Expected header cell, got %q", rows[2][1])
	}
}

func TestReadTableSpreadsheetSkipsEmptySheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Data", "A1", "Торговое наименование")
	f.SetCellValue("Data", "B1", "Производитель")
	f.SetCellValue("Data", "A2", "Биокан DHPPi")
	f.SetCellValue("Data", "B2", "MSD")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	table, source, err := ReadTable("list.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if source != "sheet Data" {
		t.Errorf("Expected source %q, got %q", "sheet Data", source)
	}
	if table.Len() != 2 || table.Cols != 2 {
		t.Errorf("Expected 2x2 grid, got %dx%d", table.Len(), table.Cols)
	}
}

func TestReadTableSpreadsheetGarbage(t *testing.T) {
	if _, _, err := ReadTable("broken.xlsx", []byte("not a workbook")); err == nil {
		t.Error("Expected error for garbage spreadsheet")
	}
}

func TestTrimGrid(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		wantRows int
		wantCols int
	}{
		{"empty", nil, 0, 0},
		{"only blanks", [][]string{{"", " "}, {""}}, 0, 0},
		{"trailing blanks", [][]string{{"a", "b", ""}, {"c", "", ""}, {"", ""}}, 2, 2},
		{"leading blank column kept", [][]string{{"", "a"}, {"", "b"}}, 2, 2},
	}

	for _, tt := range tests {
		got := trimGrid(tt.rows)
		if len(got) != tt.wantRows {
			t.Errorf("%s: trimGrid rows = %d, expected %d", tt.name, len(got), tt.wantRows)
			continue
		}
		cols := 0
		for _, r := range got {
			if len(r) > cols {
				cols = len(r)
			}
		}
		if cols != tt.wantCols {
			t.Errorf("%s: trimGrid cols = %d, expected %d", tt.name, cols, tt.wantCols)
		}
	}
}

func TestReadTableSpreadsheetDateCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	expiry := time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC)
	header := []interface{}{"Производитель", "Срок действия", "Перечень продукции"}
	row := []interface{}{"MSD", expiry, "Биокан DHPPi"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}

	// Russian-locale display format and the built-in short date
	custom := "dd.mm.yyyy;@"
	customStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	shortStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	f.SetCellValue(sheet, "B3", expiry)
	f.SetCellStyle(sheet, "B3", "B3", customStyle)
	f.SetCellValue(sheet, "B4", time.Date(2000, time.March, 15, 0, 0, 0, 0, time.UTC))
	f.SetCellStyle(sheet, "B4", "B4", shortStyle)
	// Text and plain numbers stay as written
	f.SetCellValue(sheet, "B5", "до 01.01.2099")
	f.SetCellStyle(sheet, "B5", "B5", shortStyle)
	f.SetCellValue(sheet, "B6", 42)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	table, _, err := ReadTable("registry.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	expected := []string{"01.01.2099", "01.01.2099", "15.03.2000", "до 01.01.2099", "42"}
	for i, want := range expected {
		if got := table.Rows[i+1][1]; got != want {
			t.Errorf("row %d expiry cell = %q, expected %q", i+1, got, want)
		}
	}

	status, d := ParseExpiry(table.Rows[1][1], testNow, NoDateUnknown)
	if status != models.StatusActive {
		t.Errorf("ParseExpiry(%q) status = %s, expected %s", table.Rows[1][1], status, models.StatusActive)
	}
	if d == nil || d.Format(DateLayout) != "01.01.2099" {
		t.Errorf("ParseExpiry(%q) date = %v, expected 01.01.2099", table.Rows[1][1], d)
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"dd.mm.yyyy", true},
		{"[$-419]d mmmm yyyy;@", true},
		{"DD/MM/YY", true},
		{"0.00", false},
		{"#,##0", false},
		{"h:mm:ss", false},
		{`0.0 "days"`, false},
		{`[Red]0.00\d`, false},
	}

	for _, tt := range tests {
		if got := isDateFormatCode(tt.code); got != tt.expected {
			t.Errorf("isDateFormatCode(%q) = %v, expected %v", tt.code, got, tt.expected)
		}
	}
}
