package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// maxXLSRows bounds how many rows are read from a legacy workbook.
const maxXLSRows = 65536

var (
	xlsxMagic = []byte("PK\x03\x04")
	xlsMagic  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf8BOM   = []byte{0xEF, 0xBB, 0xBF}
)

type fileFormat int

const (
	formatCSV fileFormat = iota
	formatXLSX
	formatXLS
)

func (f fileFormat) String() string {
	switch f {
	case formatXLSX:
		return "xlsx"
	case formatXLS:
		return "xls"
	default:
		return "csv"
	}
}

// cell is one spreadsheet value. numeric is set when the workbook stored a number.
type cell struct {
	text    string
	numeric bool
}

// sheetRow keeps the 1-based row number of the sheet it was read from.
type sheetRow struct {
	number int
	cells  []cell
}

func (r sheetRow) cell(i int) cell {
	if i < 0 || i >= len(r.cells) {
		return cell{}
	}
	return r.cells[i]
}

func (r sheetRow) isBlank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c.text) != "" {
			return false
		}
	}
	return true
}

func detectFormat(data []byte) fileFormat {
	switch {
	case bytes.HasPrefix(data, xlsxMagic):
		return formatXLSX
	case bytes.HasPrefix(data, xlsMagic):
		return formatXLS
	default:
		return formatCSV
	}
}

// readSheet returns the rows of the first sheet of an XLSX, XLS or CSV file.
func readSheet(data []byte) ([]sheetRow, error) {
	var (
		rows []sheetRow
		err  error
	)

	format := detectFormat(data)
	switch format {
	case formatXLSX:
		rows, err = readXLSX(data)
	case formatXLS:
		rows, err = readXLS(data)
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeUnreadableFile,
			fmt.Sprintf("failed to read %s file", format),
			errors.Join(domainerror.ErrUnreadableFile, err),
		)
	}

	return rows, nil
}

func readXLSX(data []byte) ([]sheetRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rawRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rows := make([]sheetRow, 0, len(rawRows))
	for i, rawRow := range rawRows {
		row := sheetRow{number: i + 1, cells: make([]cell, len(rawRow))}
		for j, value := range rawRow {
			row.cells[j] = cell{text: value}
			if strings.TrimSpace(value) == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				continue
			}
			cellType, err := f.GetCellType(sheetName, ref)
			if err != nil {
				continue
			}
			if isNumericCellType(cellType) && isNumber(value) {
				row.cells[j].numeric = true
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func isNumericCellType(t excelize.CellType) bool {
	return t == excelize.CellTypeUnset || t == excelize.CellTypeNumber || t == excelize.CellTypeDate
}

func readXLS(data []byte) ([]sheetRow, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rawRows := wb.ReadAllCells(maxXLSRows)
	rows := make([]sheetRow, 0, len(rawRows))
	for i, rawRow := range rawRows {
		row := sheetRow{number: i + 1, cells: make([]cell, len(rawRow))}
		for j, value := range rawRow {
			row.cells[j] = cell{text: value, numeric: isNumber(value)}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func readCSV(data []byte) ([]sheetRow, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rows := make([]sheetRow, 0)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := r.FieldPos(0)
		row := sheetRow{number: line, cells: make([]cell, len(record))}
		for j, value := range record {
			row.cells[j] = cell{text: value}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func isNumber(value string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil
}
