package spreadsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/valueobject"
)

// maxExcelSerial is the serial of 9999-12-31, the last date a workbook can hold.
const maxExcelSerial = 2958465

var (
	errMissingRequired = errors.New("missing date or amount")
	errZeroAmount      = errors.New("amount must be greater than zero")
)

// amountNoise is stripped from textual amounts before parsing.
var amountNoise = strings.NewReplacer(
	",", "",
	"，", "",
	"¥", "",
	"￥", "",
	"$", "",
	"元", "",
	" ", "",
	" ", "",
)

// columnIndex maps each logical field to candidate column positions in synonym order.
type columnIndex struct {
	date        []int
	direction   []int
	amount      []int
	remark      []int
	category    []int
	subCategory []int
	discount    []int
	refund      []int
	tags        []int
}

// TabularParser parses exports whose first row is a header row.
type TabularParser struct {
	def        SourceDefinition
	income     map[string]bool
	delimiters map[rune]bool
}

// NewTabularParser creates a parser for one source definition.
func NewTabularParser(def SourceDefinition) *TabularParser {
	income := make(map[string]bool, len(def.IncomeValues))
	for _, v := range def.IncomeValues {
		income[strings.TrimSpace(v)] = true
	}

	delimiters := make(map[rune]bool)
	for _, d := range def.TagDelimiters {
		for _, r := range d {
			delimiters[r] = true
		}
	}

	return &TabularParser{
		def:        def,
		income:     income,
		delimiters: delimiters,
	}
}

// Source returns the identifier of the export format.
func (p *TabularParser) Source() string {
	return p.def.Name
}

// Parse reads the first sheet and converts every non-blank data row.
func (p *TabularParser) Parse(data []byte) (*adapter.ParseResult, error) {
	rows, err := readSheet(data)
	if err != nil {
		return nil, err
	}

	result := &adapter.ParseResult{
		Rows:   make([]*entity.ParsedRow, 0),
		Errors: make([]string, 0),
	}

	headerAt := -1
	for i, row := range rows {
		if !row.isBlank() {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return result, nil
	}
	columns := p.indexColumns(rows[headerAt])

	for _, row := range rows[headerAt+1:] {
		if row.isBlank() {
			continue
		}
		result.Total++

		parsed, err := p.parseRow(row, columns)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", row.number, err))
			continue
		}
		result.Rows = append(result.Rows, parsed)
	}

	return result, nil
}

func (p *TabularParser) indexColumns(header sheetRow) columnIndex {
	positions := make(map[string]int, len(header.cells))
	for i, c := range header.cells {
		name := strings.TrimSpace(c.text)
		if _, exists := positions[name]; !exists && name != "" {
			positions[name] = i
		}
	}

	lookup := func(synonyms []string) []int {
		idx := make([]int, 0, len(synonyms))
		for _, s := range synonyms {
			if i, ok := positions[s]; ok {
				idx = append(idx, i)
			}
		}
		return idx
	}

	cols := p.def.Columns
	return columnIndex{
		date:        lookup(cols.Date),
		direction:   lookup(cols.Direction),
		amount:      lookup(cols.Amount),
		remark:      lookup(cols.Remark),
		category:    lookup(cols.Category),
		subCategory: lookup(cols.SubCategory),
		discount:    lookup(cols.Discount),
		refund:      lookup(cols.Refund),
		tags:        lookup(cols.Tags),
	}
}

// field returns the first non-empty cell among the candidate columns.
func field(row sheetRow, candidates []int) (cell, bool) {
	for _, i := range candidates {
		c := row.cell(i)
		if strings.TrimSpace(c.text) != "" {
			return c, true
		}
	}
	return cell{}, false
}

func text(row sheetRow, candidates []int) string {
	c, _ := field(row, candidates)
	return strings.TrimSpace(c.text)
}

func (p *TabularParser) parseRow(row sheetRow, cols columnIndex) (*entity.ParsedRow, error) {
	dateCell, hasDate := field(row, cols.date)
	amountCell, hasAmount := field(row, cols.amount)
	if !hasDate || !hasAmount {
		return nil, errMissingRequired
	}

	amount, err := parseAmount(amountCell.text)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", strings.TrimSpace(amountCell.text))
	}
	amount = amount.Abs()
	if amount.IsZero() {
		return nil, errZeroAmount
	}

	// Placeholder text such as "-" in a discount or refund column counts as no deduction.
	discount := decimal.Zero
	for _, candidates := range [][]int{cols.discount, cols.refund} {
		if c, ok := field(row, candidates); ok {
			if d, err := parseAmount(c.text); err == nil {
				discount = discount.Add(d.Abs())
			}
		}
	}

	direction := entity.DirectionExpense
	if p.income[text(row, cols.direction)] {
		direction = entity.DirectionIncome
	}

	parsed := entity.NewParsedRow(normalizeDate(dateCell), direction, amount, discount, text(row, cols.remark))
	parsed.CategoryName = text(row, cols.category)
	parsed.SubCategoryName = text(row, cols.subCategory)
	if raw := text(row, cols.tags); raw != "" {
		parsed.TagNames = p.splitTags(raw)
	}

	return parsed, nil
}

func (p *TabularParser) splitTags(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return p.delimiters[r] || (p.def.SplitOnWhitespace && unicode.IsSpace(r))
	})

	tags := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(amountNoise.Replace(strings.TrimSpace(raw)))
}

// normalizeDate converts a date-serial to YYYY-MM-DD, otherwise keeps the first ten characters.
func normalizeDate(c cell) string {
	value := strings.TrimSpace(c.text)

	if c.numeric {
		if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 && serial <= maxExcelSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return valueobject.FormatLedgerDate(t)
			}
		}
	}

	if utf8.RuneCountInString(value) <= 10 {
		return value
	}
	return string([]rune(value)[:10])
}
