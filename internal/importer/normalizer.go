package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ryumonX/uangku/internal/core/domain"
)

// Column header aliases, tried in order. The first alias whose cell resolves
// wins; unrecognized columns are ignored entirely.
var (
	dateAliases     = []string{"TANGGAL", "Tanggal", "DATE"}
	noteAliases     = []string{"TRANSAKSI", "Transaksi", "KETERANGAN", "Keterangan"}
	posAliases      = []string{"KET.", "Ket", "POS"}
	categoryAliases = []string{"CARA PEMBAYARAN", "Cara Pembayaran", "Metode"}
	moneyInAliases  = []string{"PEMASUKAN"}
	moneyOutAliases = []string{"PENGELUARAN"}
)

// NormalizedRow is the canonical record produced from one raw spreadsheet row.
// Date is nil when no representation in the row could be parsed; the row is
// still staged and the caller decides the fallback at save time.
type NormalizedRow struct {
	Date     *time.Time             `json:"date"`
	Note     string                 `json:"note"`
	Pos      string                 `json:"pos"`
	Category string                 `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
	Type     domain.TransactionType `json:"type"`
}

// textMonthPattern matches dates like "01-May-25", "5/Jul/2024" or "12 Aug 24":
// day, a month name of three or more letters, and a 2- or 4-digit year.
var textMonthPattern = regexp.MustCompile(`^(\d{1,2})[-/ ]([A-Za-z]{3,})[-/ ](\d{2,4})$`)

var monthsByAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Fallback layouts for date strings that are neither serials nor D-Mon-Y.
var genericDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"2 January 2006",
}

// excelEpochOffsetDays is the day count between the spreadsheet serial epoch
// (1899-12-30) and the Unix epoch (1970-01-01).
const excelEpochOffsetDays = 25569

// nonCurrency matches every character that is not a digit, comma, or minus sign.
var nonCurrency = regexp.MustCompile(`[^0-9,-]+`)

// NormalizeRow converts one raw spreadsheet row (header → cell value) into a
// canonical record. It never fails: each malformed cell degrades to its
// field's zero value (nil date, 0 amount, empty string) instead of rejecting
// the row.
func NormalizeRow(row map[string]string) NormalizedRow {
	moneyIn := ParseCurrency(firstNonEmpty(row, moneyInAliases))
	moneyOut := ParseCurrency(firstNonEmpty(row, moneyOutAliases))

	txnType := domain.Unclassified
	amount := decimal.Zero
	if moneyIn.IsPositive() {
		txnType = domain.Income
		amount = moneyIn
	} else if moneyOut.IsPositive() {
		txnType = domain.Expense
		amount = moneyOut
	}

	return NormalizedRow{
		Date:     parseDateAliases(row),
		Note:     firstNonEmpty(row, noteAliases),
		Pos:      firstNonEmpty(row, posAliases),
		Category: firstNonEmpty(row, categoryAliases),
		Amount:   amount,
		Type:     txnType,
	}
}

// firstNonEmpty returns the first alias whose cell holds a non-blank value.
func firstNonEmpty(row map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(row[alias]); v != "" {
			return v
		}
	}
	return ""
}

// parseDateAliases tries each date alias in order and keeps the first cell
// that parses. A cell that is present but unparseable falls through to the
// next alias, matching the original import behavior.
func parseDateAliases(row map[string]string) *time.Time {
	for _, alias := range dateAliases {
		if d := ParseDate(row[alias]); d != nil {
			return d
		}
	}
	return nil
}

// ParseDate resolves a spreadsheet date cell, trying in order:
//  1. a numeric day-count serial where day 0 is 1899-12-30
//  2. a D-Mon-Y string with a month-name abbreviation (2-digit year → 2000+YY)
//  3. a handful of generic date layouts
//
// It returns nil when nothing matches. The result is always a bare UTC
// calendar date.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		days := int64(math.Floor(serial - excelEpochOffsetDays))
		d := time.Unix(days*86400, 0).UTC().Truncate(24 * time.Hour)
		return &d
	}

	if m := textMonthPattern.FindStringSubmatch(value); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthsByAbbrev[strings.ToLower(m[2])[:3]]
		if ok {
			year, _ := strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				year += 2000
			}
			d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			return &d
		}
	}

	for _, layout := range genericDateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			d = d.UTC()
			return &d
		}
	}

	return nil
}

// ParseCurrency parses a localized currency string such as "Rp 5.000.000" into
// its decimal magnitude. Every character that is not a digit, comma, or minus
// sign is stripped (dropping symbols and dot thousands separators), then the
// first comma becomes the decimal point. Anything unparseable yields zero.
func ParseCurrency(value string) decimal.Decimal {
	cleaned := nonCurrency.ReplaceAllString(value, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
