package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/vitalyzotov/gpb-module/internal/encoding"
)

// Column labels as they appear in the bank's CSV export.
const (
	colDate     = "Дата операции"
	colAccount  = "Номер счета"
	colCard     = "Номер карты"
	colDeposit  = "Приход"
	colWithdraw = "Расход"
	colFee      = "Комиссия"
	colCurrency = "Валюта"
	colDesc     = "Описание операции"
)

// dateTimeLayout is the fixed 24-hour zero-padded format used by the export.
const dateTimeLayout = "02.01.2006 15:04:05"

// Parser reads the bank's CSV statement export and produces operations in
// source row order. It never touches the filesystem; input is any reader.
//
// The export is comma-delimited with double-quote quoting and a header row.
// Columns are matched by header label; extra unknown columns are ignored.
// Account and card columns are optional per file (some statements are
// account-only, others card-only).
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// colIndex maps column labels to their index in the header row.
type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) ([]Operation, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("statement has no header row")
	}

	cols := indexHeader(rows[0])
	for _, name := range []string{colDate, colCurrency, colDesc} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("statement header is missing column %q", name)
		}
	}

	var ops []Operation

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, header is row 1

		ts, err := time.Parse(dateTimeLayout, cellValue(row, cols[colDate]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse operation date: %w", rowNum, err)
		}

		currency := mapCurrency(cellValue(row, cols[colCurrency]))
		if currency == "" {
			return nil, fmt.Errorf("row %d: missing currency", rowNum)
		}

		desc := cellValue(row, cols[colDesc])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := resolveAmount(row, cols)
		if !ok {
			// No deposit, withdrawal or fee value: not a money movement.
			continue
		}

		ops = append(ops, Operation{
			Timestamp:     ts,
			AccountNumber: optionalCell(row, cols, colAccount),
			CardNumber:    optionalCell(row, cols, colCard),
			Amount:        amount,
			Currency:      currency,
			Description:   desc,
			Hold:          false,
		})
	}

	return ops, nil
}

// indexHeader maps trimmed header labels to column positions.
func indexHeader(header []string) colIndex {
	cols := make(colIndex)

	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name != "" {
			cols[name] = i
		}
	}

	return cols
}

// resolveAmount picks the first present value of deposit, withdrawal, fee.
// The sign comes from the cell as printed; withdrawals are negative.
func resolveAmount(row []string, cols colIndex) (decimal.Decimal, bool) {
	for _, name := range []string{colDeposit, colWithdraw, colFee} {
		idx, ok := cols[name]
		if !ok {
			continue
		}

		if d, ok := parseRuDecimal(cellValue(row, idx)); ok {
			return d, true
		}
	}

	return decimal.Decimal{}, false
}

// ruDecimalCleaner strips grouping (regular and non-breaking spaces) and
// converts the Russian decimal comma to a point.
var ruDecimalCleaner = strings.NewReplacer(" ", "", " ", "", ",", ".")

// parseRuDecimal parses a Russian-locale numeric cell. Empty or unparsable
// cells yield an absent value, never an error.
func parseRuDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(ruDecimalCleaner.Replace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d, true
}

// mapCurrency normalizes the bank's legacy ruble code to the canonical one.
func mapCurrency(currency string) string {
	if strings.EqualFold(currency, "RUB") {
		return "RUR"
	}

	return currency
}

// optionalCell reads a column that may be absent from this file.
func optionalCell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
