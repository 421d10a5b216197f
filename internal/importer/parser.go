// Package importer turns bank statement CSV exports into draft ledger
// entries. The format is auto-detected by matching column headers against
// known profiles, so callers never declare which bank a file came from.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	enc "github.com/dsilveira/tally/internal/encoding"
	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/money"
	"github.com/dsilveira/tally/internal/split"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// dateLayouts is tried in order when parsing a row's date cell.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// Parse reads a statement and returns draft create params, one per row.
// Drafts are payer-only equal splits: the caller settles who shares each
// entry (and its category) before the transaction is created.
func (p *Parser) Parse(r io.Reader, payer uuid.UUID) ([]ledger.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no known statement layout matched the file headers")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1, payer)
}

// detectDelimiter picks between semicolon and comma by inspecting the
// first line. Header rows carry no decimal commas, so a raw count is safe.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	if bytes.Count(line, []byte{';'}) >= bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

// colIndex maps header names to their position in the row.
type colIndex map[string]int

// detectProfile scans for a row whose cells satisfy some profile's
// required columns. Statement exports often start with account metadata,
// so the header is rarely the first row.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts drafts from the data rows following the header.
// Rows whose date cell does not parse are footers or blanks and are
// skipped; a data row with no description is an error.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int, payer uuid.UUID) ([]ledger.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var drafts []ledger.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, direction, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		drafts = append(drafts, ledger.CreateParams{
			Total:       amount,
			Direction:   direction,
			Description: desc,
			Payer:       payer,
			Policy:      split.PolicyEqual,
			Date:        date,
		})
	}

	return drafts, nil
}

func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseAmount(p *Profile, cols colIndex, row []string) (money.Money, ledger.Direction, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(row, cols[p.AmountCol])
	case amountSplit:
		return parseSplitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	}

	return 0, "", false
}

// parseSingleAmount handles one signed column: negative values are
// expenses, positive values income, zero rows are skipped.
func parseSingleAmount(row []string, idx int) (money.Money, ledger.Direction, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, "", false
	}

	amount, err := money.ParseDecimal(s)
	if err != nil || amount == 0 {
		return 0, "", false
	}

	if amount < 0 {
		return -amount, ledger.DirectionExpense, true
	}

	return amount, ledger.DirectionIncome, true
}

// parseSplitAmount handles separate debit/credit columns. Debit wins when
// both are populated, which real exports never do.
func parseSplitAmount(row []string, debitIdx, creditIdx int) (money.Money, ledger.Direction, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		if amount, err := money.ParseDecimal(s); err == nil && amount != 0 {
			return amount.Abs(), ledger.DirectionExpense, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		if amount, err := money.ParseDecimal(s); err == nil && amount != 0 {
			return amount.Abs(), ledger.DirectionIncome, true
		}
	}

	return 0, "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
