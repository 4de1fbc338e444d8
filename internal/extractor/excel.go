package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	"github.com/xuri/excelize/v2"
)

type excelExtractor struct{}

func NewExcelExtractor() Extractor {
	return excelExtractor{}
}

func (excelExtractor) Extract(_ context.Context, r io.ReadSeeker) Result {
	data, err := readAll(r)
	if err != nil {
		return Failed(format.Excel, err)
	}

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Failed(format.Excel, fmt.Errorf("failed to open workbook: %w", err))
	}
	defer book.Close()

	var sheets []string
	for _, name := range book.GetSheetList() {
		rows, err := book.GetRows(name)
		if err != nil {
			return Failed(format.Excel, fmt.Errorf("failed to read sheet %q: %w", name, err))
		}
		sheets = append(sheets, "Sheet: "+name+"\n"+renderRows(rows))
	}

	return Text(strings.TrimSpace(strings.Join(sheets, "\n\n")))
}

// cellReplacer flattens cell text so it cannot break the row and column
// layout.
var cellReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ")

// renderRows lays rows out as aligned columns. Short rows are padded.
func renderRows(rows [][]string) string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return ""
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		cells := make([]string, width)
		for i, cell := range row {
			cells[i] = cellReplacer.Replace(cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
