// Package xlsx encodes flat records as single-sheet Office Open XML workbooks.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/approval-form/internal/domain"
)

const (
	// SheetName is the name of the only sheet in every workbook.
	SheetName = "فرم"
	// ContentType is the MIME type of the encoded workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Encoder writes one header row of keys and one row of values.
type Encoder struct{}

func New() *Encoder { return &Encoder{} }

// Encode returns the workbook bytes for r.
func (e *Encoder) Encode(r domain.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(r))
	values := make([]any, len(r))
	for i, field := range r {
		header[i] = field.Key
		values[i] = field.Value
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A2", &values); err != nil {
		return nil, fmt.Errorf("write value row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
