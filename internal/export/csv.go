// Package export renders a record snapshot as CSV. The export is a
// derived, one-way view: it never feeds back into the stores.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"midaxas/internal/core"
)

// Header is the exported column set, in order.
var Header = []string{"id", "date", "type", "amount", "category", "note", "created_at"}

// WriteCSV writes the snapshot to w ordered by (date, created_at).
// Any write failure is reported to the caller.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	rows := make([]core.Transaction, len(txs))
	copy(rows, txs)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date.Time) {
			return rows[i].Date.Before(rows[j].Date.Time)
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range rows {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date.String(),
			string(t.Kind),
			t.Amount.String(),
			t.Category,
			t.Note,
			t.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ToFile writes the snapshot to path, failing if the destination is
// not writable rather than silently dropping the export.
func ToFile(path string, txs []core.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, txs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}
