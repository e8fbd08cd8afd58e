package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var (
	errNoData      = errors.New("no data")
	errInvalidUTF8 = errors.New("invalid utf-8")
)

// textExtensions lists file extensions read as delimited text.
var textExtensions = map[string]bool{
	".csv": true,
	".tsv": true,
	".txt": true,
}

// spreadsheetExtensions lists the OOXML workbook extensions.
var spreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// delimiters are tried in order after the sniffed one.
var delimiters = []rune{',', ';', '\t'}

type textEncoding struct {
	name   string
	decode func([]byte) ([]byte, error)
}

// textEncodings are tried in order. ISO-8859-1 maps every byte and never fails.
var textEncodings = []textEncoding{
	{name: "utf-8", decode: decodeUTF8},
	{name: "windows-1251", decode: decodeCharmap(charmap.Windows1251)},
	{name: "iso-8859-1", decode: decodeCharmap(charmap.ISO8859_1)},
}

func decodeUTF8(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	return data, nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		out, _, err := transform.Bytes(cm.NewDecoder(), data)
		return out, err
	}
}

// IsDelimitedText reports whether a file name is read as delimited text.
func IsDelimitedText(name string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsSpreadsheet reports whether a file name is read as a workbook.
func IsSpreadsheet(name string) bool {
	return spreadsheetExtensions[strings.ToLower(filepath.Ext(name))]
}

// ReadTable turns raw file bytes into a RawTable. The format is chosen by the
// file name extension. The second result describes how the grid was read.
func ReadTable(name string, data []byte) (*models.RawTable, string, error) {
	switch {
	case IsDelimitedText(name):
		return readDelimited(data)
	case IsSpreadsheet(name):
		return readSpreadsheet(data)
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// readDelimited tries each encoding with the sniffed delimiter and then each
// fixed delimiter, stopping at the first parse with more than one column.
// When no attempt yields several columns the first successful parse is kept.
func readDelimited(data []byte) (*models.RawTable, string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", errNoData
	}

	var (
		fallback       *models.RawTable
		fallbackSource string
		lastErr        error
	)
	for _, enc := range textEncodings {
		decoded, err := enc.decode(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", enc.name, err)
			continue
		}

		for _, delim := range delimiterOrder(decoded) {
			rows, err := parseDelimited(decoded, delim)
			if err != nil {
				lastErr = fmt.Errorf("%s %q: %w", enc.name, delim, err)
				continue
			}
			table := models.NewRawTable(trimGrid(rows))
			if table.Len() == 0 {
				continue
			}
			source := fmt.Sprintf("%s %q", enc.name, delim)
			if table.Cols > 1 {
				return table, source, nil
			}
			if fallback == nil {
				fallback, fallbackSource = table, source
			}
		}
	}

	if fallback != nil {
		return fallback, fallbackSource, nil
	}
	if lastErr == nil {
		lastErr = errNoData
	}
	return nil, "", lastErr
}

// delimiterOrder returns the sniffed delimiter first, followed by the fixed ones.
func delimiterOrder(data []byte) []rune {
	order := make([]rune, 0, len(delimiters)+1)
	if sniffed := SniffDelimiter(data); sniffed != 0 {
		order = append(order, sniffed)
	}
	for _, d := range delimiters {
		if len(order) > 0 && order[0] == d {
			continue
		}
		order = append(order, d)
	}
	return order
}

// SniffDelimiter guesses the delimiter of delimited text from its first lines.
// A candidate wins when it appears the same non-zero number of times on every
// sampled line; ties go to the higher count. Returns 0 when nothing qualifies.
func SniffDelimiter(data []byte) rune {
	const sampleLines = 10

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == sampleLines {
			break
		}
	}
	if len(lines) == 0 {
		return 0
	}

	var best rune
	bestCount := 0
	for _, d := range delimiters {
		count := strings.Count(lines[0], string(d))
		if count == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if strings.Count(line, string(d)) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best, bestCount = d, count
		}
	}
	return best
}

func parseDelimited(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// readSpreadsheet opens a workbook and reads the first sheet holding data.
// Every cell lands in the grid as plain data.
func readSpreadsheet(data []byte) (*models.RawTable, string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	sheetName, grid, err := firstDataSheet(f)
	if err != nil {
		return nil, "", err
	}
	return models.NewRawTable(grid), "sheet " + sheetName, nil
}
