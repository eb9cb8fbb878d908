package analytics

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// WriteCSV serializa las filas: encabezados sin comillas, celdas de datos siempre entre comillas.
func WriteCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	if len(rows) == 0 {
		return buf.Bytes(), nil
	}
	w := csv.NewWriter(&buf)
	if err := w.Write(rows[0]); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	for _, row := range rows[1:] {
		for i, cell := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
