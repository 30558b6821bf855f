package dataset

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"f500cli/pkg/contracts/domain"
)

// LoadExcel parses an XLSX workbook and cleans its first sheet through the
// same pipeline as CSV input. The first row is treated as the header.
func (l *Loader) LoadExcel(raw []byte) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("workbook contains no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("sheet %s contains no rows", sheets[0])}
	}

	return l.build(rows[0], rows[1:])
}
