// Package export turns a page's filtered, sorted view into CSV with no
// server round-trip.
package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes a header row followed by the given rows. Fields
// containing commas, quotes or newlines are quoted with internal quotes
// doubled, so a standard CSV parser yields the original values back.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
