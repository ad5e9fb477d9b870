package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column types reported in the detected schema.
const (
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeString  = "string"
)

type ColumnStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type Anomaly struct {
	Row    int     `json:"row"`
	Column string  `json:"column"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

type Result struct {
	Records     []map[string]any       `json:"records"`
	Schema      map[string]string      `json:"schema"`
	Stats       map[string]ColumnStats `json:"stats"`
	Anomalies   []Anomaly              `json:"anomalies"`
	RowCount    int                    `json:"row_count"`
	ColumnCount int                    `json:"column_count"`
}

// Process parses a CSV or XLSX payload, infers a per-column schema, computes
// summary statistics for numeric columns, runs outlier detection on the
// first numeric column and serializes rows record-oriented.
func Process(fileName string, data []byte) (*Result, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(fileName), ".xlsx"):
		header, rows, err = parseXLSX(data)
	default:
		header, rows, err = parseCSV(data)
	}
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("tabular file %s has no header row", fileName)
	}

	schema := inferSchema(header, rows)
	records := buildRecords(header, rows, schema)
	stats := summarize(header, rows, schema)
	anomalies := detectAnomalies(header, rows, schema)

	return &Result{
		Records:     records,
		Schema:      schema,
		Stats:       stats,
		Anomalies:   anomalies,
		RowCount:    len(rows),
		ColumnCount: len(header),
	}, nil
}

func parseCSV(data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], normalizeRows(all[0], all[1:]), nil
}

func parseXLSX(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parse xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("xlsx has no sheets")
	}
	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], normalizeRows(all[0], all[1:]), nil
}

// normalizeRows pads or trims every row to the header width so ragged input
// cannot shift column values.
func normalizeRows(header []string, rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		fixed := make([]string, len(header))
		copy(fixed, row)
		out = append(out, fixed)
	}
	return out
}

func inferSchema(header []string, rows [][]string) map[string]string {
	schema := make(map[string]string, len(header))
	for col, name := range header {
		allInt := true
		allFloat := true
		seen := false
		for _, row := range rows {
			v := strings.TrimSpace(row[col])
			if v == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allFloat = false
			}
		}
		switch {
		case seen && allInt:
			schema[name] = TypeInteger
		case seen && allFloat:
			schema[name] = TypeFloat
		default:
			schema[name] = TypeString
		}
	}
	return schema
}

func buildRecords(header []string, rows [][]string, schema map[string]string) []map[string]any {
	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]any, len(header))
		for col, name := range header {
			v := strings.TrimSpace(row[col])
			switch schema[name] {
			case TypeInteger:
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					rec[name] = n
				} else {
					rec[name] = nil
				}
			case TypeFloat:
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					rec[name] = f
				} else {
					rec[name] = nil
				}
			default:
				rec[name] = row[col]
			}
		}
		records = append(records, rec)
	}
	return records
}

func summarize(header []string, rows [][]string, schema map[string]string) map[string]ColumnStats {
	stats := make(map[string]ColumnStats)
	for col, name := range header {
		if schema[name] != TypeInteger && schema[name] != TypeFloat {
			continue
		}
		values := numericColumn(rows, col)
		if len(values) == 0 {
			continue
		}
		stats[name] = ColumnStats{
			Count: len(values),
			Mean:  mean(values),
			Std:   sampleStd(values),
			Min:   minOf(values),
			Max:   maxOf(values),
		}
	}
	return stats
}

// detectAnomalies flags rows in the first numeric column whose Z-score
// magnitude exceeds 3. Columns with zero variance (or fewer than two values)
// produce no anomalies, and a file with no numeric column skips the pass.
func detectAnomalies(header []string, rows [][]string, schema map[string]string) []Anomaly {
	col := -1
	name := ""
	for i, h := range header {
		if schema[h] == TypeInteger || schema[h] == TypeFloat {
			col = i
			name = h
			break
		}
	}
	if col < 0 {
		return nil
	}

	values := numericColumn(rows, col)
	if len(values) < 2 {
		return nil
	}
	m := mean(values)
	std := sampleStd(values)
	if std == 0 {
		return nil
	}

	var anomalies []Anomaly
	for rowIdx, row := range rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			continue
		}
		if math.Abs(v-m)/std > 3 {
			anomalies = append(anomalies, Anomaly{
				Row:    rowIdx,
				Column: name,
				Value:  v,
				Reason: "Z-score > 3",
			})
		}
	}
	return anomalies
}

func numericColumn(rows [][]string, col int) []float64 {
	var values []float64
	for _, row := range rows {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); err == nil {
			values = append(values, v)
		}
	}
	return values
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func minOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

func maxOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}
