package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/user/nessusparse/pkg/engine"
)

// Extension is the workbook file extension.
const Extension = ".xlsx"

var (
	// ErrWrite is returned when the workbook cannot be created or saved.
	ErrWrite = errors.New("workbook write failed")
	// ErrNoFindings is returned when every bucket is empty. A workbook must
	// hold at least one worksheet, so nothing is written.
	ErrNoFindings = errors.New("no reportable findings")
)

// DefaultTabColors are the worksheet tab colors per severity (RGB hex).
var DefaultTabColors = map[engine.Severity]string{
	engine.Critical: "C00000",
	engine.High:     "FF6600",
	engine.Moderate: "FFC000",
	engine.Low:      "70AD47",
}

// DefaultHeaderFill is the background color of header cells.
const DefaultHeaderFill = "1F4E78"

// Options control workbook layout. Zero values fall back to defaults.
type Options struct {
	Columns    []Column
	TabColors  map[engine.Severity]string
	HeaderFill string
}

// Result describes a written workbook.
type Result struct {
	Path   string
	Sheets []string
	Rows   int
}

func (o Options) withDefaults() Options {
	if len(o.Columns) == 0 {
		o.Columns = DefaultColumns
	}
	colors := make(map[engine.Severity]string, len(DefaultTabColors))
	for s, c := range DefaultTabColors {
		colors[s] = c
	}
	for s, c := range o.TabColors {
		colors[s] = c
	}
	o.TabColors = colors
	if o.HeaderFill == "" {
		o.HeaderFill = DefaultHeaderFill
	}
	return o
}

// Write renders one worksheet per non-empty bucket, Critical first, and saves
// the workbook to path. The file at path is replaced only once the complete
// workbook has been written; on failure no output file is left behind.
func Write(b *engine.Buckets, path string, opts Options) (*Result, error) {
	if b.NonEmpty() == 0 {
		return nil, ErrNoFindings
	}
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(opts.HeaderFill)}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: header style: %v", ErrWrite, err)
	}

	res := &Result{Path: path}
	defaultSheet := f.GetSheetName(0)
	err = b.Each(func(s engine.Severity, findings []engine.Finding) error {
		if len(findings) == 0 {
			return nil
		}
		name := s.Label()
		if len(res.Sheets) == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := writeSheet(f, name, findings, opts.Columns, headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %v", name, err)
		}
		if c := opts.TabColors[s]; c != "" {
			color := argbColor(c)
			if err := f.SetSheetProps(name, &excelize.SheetPropsOptions{TabColorRGB: &color}); err != nil {
				return err
			}
		}
		res.Sheets = append(res.Sheets, name)
		res.Rows += len(findings)
		slog.Debug("wrote worksheet", "sheet", name, "rows", len(findings))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	f.SetActiveSheet(0)

	if err := save(f, path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return res, nil
}

func writeSheet(f *excelize.File, sheet string, findings []engine.Finding, cols []Column, headerStyle int) error {
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, finding := range findings {
		row := make([]interface{}, len(cols))
		for j, c := range cols {
			row[j] = c.Value(finding)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	for i, c := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, c.Width); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// save writes the workbook next to path and renames it into place.
func save(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".nessusparse-*"+Extension)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func hexColor(c string) string {
	return strings.ToUpper(strings.TrimPrefix(c, "#"))
}

// argbColor pads an RGB hex color with an opaque alpha channel.
func argbColor(c string) string {
	c = hexColor(c)
	if len(c) == 6 {
		return "FF" + c
	}
	return c
}
