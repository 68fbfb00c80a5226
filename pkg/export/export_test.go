package export

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"leadpanel/pkg/model"
)

var sampleRows = []model.Lead{
	{
		EnrollDate: "2024-03-01", Name: "Ana Souza", Document: "12345678900",
		Phone: "11999990000", Email: "ana@example.com", Origin: "FACEBOOK",
		Hub: "Centro", Course: "Direito", Status: "NOVO", Advisor: "Carlos",
	},
	{
		EnrollDate: "2024-03-02", Name: "João; Lima", Course: "Medicina", Status: "CONTATO",
	},
}

func TestWriteCSV_BOMAndSeparator(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.Bytes()

	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("missing UTF-8 BOM")
	}
	body := string(out[3:])
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "data_inscricao;nome;") {
		t.Errorf("header wrong: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Ana Souza;") {
		t.Errorf("row 1 wrong: %q", lines[1])
	}
	// A value containing the separator must be quoted.
	if !strings.Contains(lines[2], `"João; Lima"`) {
		t.Errorf("separator inside value not quoted: %q", lines[2])
	}
}

func TestSaveCSV_DatedFilename(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	path, err := SaveCSV(dir, sampleRows, now)
	if err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}
	if !strings.HasSuffix(path, "leads_export_2024-06-15.csv") {
		t.Errorf("unexpected path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestWriteStatusChart(t *testing.T) {
	var buf bytes.Buffer
	byStatus := []model.StatusCount{
		{Status: "NOVO", Count: 120},
		{Status: "CONTATO", Count: 45},
		{Status: "MATRICULADO", Count: 9},
	}
	if err := WriteStatusChart(&buf, byStatus); err != nil {
		t.Fatalf("WriteStatusChart: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("output is not an SVG document")
	}
	for _, status := range []string{"NOVO", "CONTATO", "MATRICULADO"} {
		if !strings.Contains(out, status) {
			t.Errorf("chart missing label %s", status)
		}
	}
	if !strings.Contains(out, "120") {
		t.Error("chart missing count annotation")
	}
}

func TestWriteStatusChart_EmptyBreakdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStatusChart(&buf, nil); err == nil {
		t.Error("expected error for empty breakdown")
	}
}
