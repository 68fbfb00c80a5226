package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	svg "github.com/ajstarks/svgo"

	"leadpanel/pkg/model"
)

const (
	chartWidth   = 640
	chartBarH    = 24
	chartGap     = 8
	chartMargin  = 16
	chartLabelW  = 180
	chartCountW  = 60
	chartMinBarW = 2
)

// WriteStatusChart renders the by-status KPI breakdown as a horizontal
// SVG bar chart.
func WriteStatusChart(w io.Writer, byStatus []model.StatusCount) error {
	if len(byStatus) == 0 {
		return fmt.Errorf("no status breakdown to chart")
	}

	maxCount := 0
	for _, sc := range byStatus {
		if sc.Count > maxCount {
			maxCount = sc.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	height := chartMargin*2 + len(byStatus)*(chartBarH+chartGap) - chartGap
	barSpan := chartWidth - chartMargin*2 - chartLabelW - chartCountW

	canvas := svg.New(w)
	canvas.Start(chartWidth, height)
	canvas.Rect(0, 0, chartWidth, height, "fill:#282A36")

	for i, sc := range byStatus {
		y := chartMargin + i*(chartBarH+chartGap)
		barW := sc.Count * barSpan / maxCount
		if barW < chartMinBarW {
			barW = chartMinBarW
		}

		canvas.Text(chartMargin, y+chartBarH-7, sc.Status,
			"font-family:sans-serif;font-size:13px;fill:#F8F8F2")
		canvas.Rect(chartMargin+chartLabelW, y, barW, chartBarH, "fill:#BD93F9")
		canvas.Text(chartMargin+chartLabelW+barW+6, y+chartBarH-7,
			fmt.Sprintf("%d", sc.Count),
			"font-family:sans-serif;font-size:13px;fill:#BFBFBF")
	}

	canvas.End()
	return nil
}

// SaveStatusChart writes the chart into dir under a dated filename and
// returns the full path.
func SaveStatusChart(dir string, byStatus []model.StatusCount, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("leads_status_%s.svg", now.Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := WriteStatusChart(f, byStatus); err != nil {
		return "", err
	}
	return path, nil
}
