package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/modeldrop/internal/dynamo"
)

// ExportData is the JSON shape of a completed run's solution. Keys
// carries the series order, since JSON objects lose it.
type ExportData struct {
	Model  string               `json:"model"`
	Params map[string]float64   `json:"params"`
	Times  []float64            `json:"times"`
	Keys   []string             `json:"keys"`
	Series map[string][]float64 `json:"series"`
}

func ExportJSON(w io.Writer, m dynamo.Model) error {
	b := m.Core()

	params := make(map[string]float64, b.Param.Len())
	for _, key := range b.Param.Keys() {
		params[key] = b.Param.At(key)
	}

	keys := b.Solution.Keys()
	series := make(map[string][]float64, len(keys))
	for _, key := range keys {
		series[key] = b.Solution.Series(key)
	}

	data := ExportData{
		Model:  b.Name,
		Params: params,
		Times:  b.Times,
		Keys:   keys,
		Series: series,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportCSV(w io.Writer, m dynamo.Model) error {
	b := m.Core()
	cw := csv.NewWriter(w)
	defer cw.Flush()

	keys := b.Solution.Keys()
	header := append([]string{"time"}, keys...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range b.Times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, key := range keys {
			row = append(row, strconv.FormatFloat(b.Solution.Series(key)[i], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
