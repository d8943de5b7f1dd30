package mailing

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// Sanitize restricts a raw row to the output columns and turns every kept
// cell into a trimmed, NFC-normalized string. Empty cells become "". Applying
// it to its own result changes nothing.
func Sanitize(row types.InputRow, outputColumns []string) *types.Record {
	keep := make(map[string]struct{}, len(outputColumns))
	for _, column := range outputColumns {
		if types.IsRecordColumn(column) {
			keep[column] = struct{}{}
		}
	}

	rec := types.NewRecord()
	for column, cell := range row {
		if _, ok := keep[column]; !ok {
			continue
		}
		rec.Set(column, cleanValue(cell))
	}
	return rec
}

func cleanValue(cell types.Cell) string {
	if cell.IsEmpty() {
		return ""
	}
	return strings.TrimFunc(norm.NFC.String(cell.String()), isTrimmable)
}

// isTrimmable matches white space and the byte order mark, which some
// exports leave in otherwise empty cells.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
