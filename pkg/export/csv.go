// Package export writes the currently fetched dashboard data to local
// files: a CSV of the lead rows and an SVG chart of the status
// distribution.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"leadpanel/pkg/model"
)

// csvHeader matches the server's export projection column order.
var csvHeader = []string{
	"data_inscricao", "nome", "cpf", "celular", "email",
	"origem", "polo", "curso", "status", "consultor",
}

// utf8BOM keeps spreadsheet tools from mis-detecting the encoding,
// matching the framing of the server-side export.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes rows as semicolon-separated CSV with a UTF-8 BOM.
func WriteCSV(w io.Writer, rows []model.Lead) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, lead := range rows {
		record := []string{
			lead.EnrollDate, lead.Name, lead.Document, lead.Phone, lead.Email,
			lead.Origin, lead.Hub, lead.Course, lead.Status, lead.Advisor,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFilename returns the dated export filename for a given day.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("leads_export_%s.csv", now.Format("2006-01-02"))
}

// SaveCSV writes rows into dir under the dated filename and returns the
// full path.
func SaveCSV(dir string, rows []model.Lead, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, CSVFilename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return "", err
	}
	return path, nil
}
