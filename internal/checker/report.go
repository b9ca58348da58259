package checker

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Report accumulates result rows and rewrites the whole CSV on every save,
// so an interrupted run still leaves a readable file behind.
type Report struct {
	path   string
	header []string
	rows   [][]string
}

func NewReport(path string, header []string) *Report {
	return &Report{path: path, header: header}
}

func (r *Report) Append(row []string) {
	r.rows = append(r.rows, row)
}

func (r *Report) Len() int { return len(r.rows) }

func (r *Report) Save() error {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("create %q: %w", r.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(r.header); err != nil {
		return err
	}
	for _, row := range r.rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
