package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"lg/wellness-go-api/internal/wellness"
)

// Logs is one partition's complete log set.
type Logs struct {
	Water    []wellness.WaterEntry    `json:"water"`
	Sleep    []wellness.SleepEntry    `json:"sleep"`
	Activity []wellness.ActivityEntry `json:"activity"`
}

var (
	waterHeader    = []string{"ID", "Date", "Time", "Amount (ml)"}
	sleepHeader    = []string{"ID", "Date", "Start", "End", "Duration (h)", "Quality"}
	activityHeader = []string{"ID", "Date", "Type", "Minutes", "Intensity"}
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (l Logs) waterRows() [][]string {
	rows := make([][]string, 0, len(l.Water))
	for _, e := range l.Water {
		rows = append(rows, []string{e.ID, e.Date, e.Time, num(e.AmountMl)})
	}
	return rows
}

func (l Logs) sleepRows() [][]string {
	rows := make([][]string, 0, len(l.Sleep))
	for _, e := range l.Sleep {
		rows = append(rows, []string{e.ID, e.Date, e.Start, e.End, num(e.DurationHours), e.Quality})
	}
	return rows
}

func (l Logs) activityRows() [][]string {
	rows := make([][]string, 0, len(l.Activity))
	for _, e := range l.Activity {
		rows = append(rows, []string{e.ID, e.Date, e.Type, num(e.Minutes), e.Intensity})
	}
	return rows
}

// ToCSV writes the three logs as consecutive sections, each introduced by a
// one-cell row naming the log followed by its header row.
func ToCSV(w io.Writer, logs Logs) error {
	cw := csv.NewWriter(w)
	sections := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"water", waterHeader, logs.waterRows()},
		{"sleep", sleepHeader, logs.sleepRows()},
		{"activity", activityHeader, logs.activityRows()},
	}
	for _, s := range sections {
		if err := cw.Write([]string{s.name}); err != nil {
			return err
		}
		if err := cw.Write(s.header); err != nil {
			return err
		}
		if err := cw.WriteAll(s.rows); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ToJSON(w io.Writer, logs Logs) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(logs)
}

// ToXLSX writes a workbook with one sheet per log.
func ToXLSX(w io.Writer, logs Logs) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"Water", waterHeader, logs.waterRows()},
		{"Sleep", sleepHeader, logs.sleepRows()},
		{"Activity", activityHeader, logs.activityRows()},
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return err
		}

		for col, h := range s.header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(s.name, cell, h)
		}
		last, _ := excelize.CoordinatesToCellName(len(s.header), 1)
		f.SetCellStyle(s.name, "A1", last, headerStyle)

		for r, row := range s.rows {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				f.SetCellValue(s.name, cell, v)
			}
		}
		f.SetColWidth(s.name, "A", "A", 38)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
