// Package export writes the samples of a single run as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/trajectory"
)

var csvHeader = []string{
	"Time", "X_Position", "Y_Position",
	"Velocity", "Angle", "Planet", "Gravity", "Mass", "Radius",
}

// WriteCSV writes the flown path, one row per sample, with the launch
// parameters repeated on every row.
func WriteCSV(w io.Writer, run *trajectory.Run) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	fixed := []string{
		formatFloat(run.Launch.Speed),
		formatFloat(run.Launch.AngleDeg),
		run.Env.Name,
		formatFloat(run.Env.Gravity),
		formatFloat(run.Launch.Mass),
		formatFloat(run.Launch.Radius),
	}

	for _, s := range run.Real {
		row := append([]string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.X, 'f', 6, 64),
			strconv.FormatFloat(s.Y, 'f', 6, 64),
		}, fixed...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Planet      string              `json:"planet"`
	Gravity     float64             `json:"gravity"`
	AirDensity  float64             `json:"air_density"`
	Launch      trajectory.Launch   `json:"launch"`
	DragEnabled bool                `json:"drag_enabled"`
	Method      trajectory.Method   `json:"method"`
	Fallback    string              `json:"fallback,omitempty"`
	Landed      bool                `json:"landed"`
	Ideal       metrics.Summary     `json:"ideal_summary"`
	Real        metrics.Summary     `json:"real_summary"`
	Comparison  metrics.Comparison  `json:"comparison"`
	IdealPath   []trajectory.Sample `json:"ideal"`
	RealPath    []trajectory.Sample `json:"real"`
}

func NewExportData(run *trajectory.Run) ExportData {
	ideal := metrics.Summarize(run.Ideal)
	flown := metrics.Summarize(run.Real)

	data := ExportData{
		Planet:      run.Env.Name,
		Gravity:     run.Env.Gravity,
		AirDensity:  run.Env.AirDensity,
		Launch:      run.Launch,
		DragEnabled: run.DragEnabled,
		Method:      run.Method,
		Landed:      run.Landed,
		Ideal:       ideal,
		Real:        flown,
		Comparison:  metrics.Compare(ideal, flown),
		IdealPath:   run.Ideal,
		RealPath:    run.Real,
	}
	if run.Fallback != nil {
		data.Fallback = run.Fallback.Error()
	}
	return data
}

func WriteJSON(w io.Writer, run *trajectory.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(run))
}

// FileName is the suggested download name, e.g.
// projectile_Earth_30mps_45deg.csv.
func FileName(run *trajectory.Run, ext string) string {
	return fmt.Sprintf("projectile_%s_%smps_%sdeg.%s",
		run.Env.Name,
		formatFloat(run.Launch.Speed),
		formatFloat(run.Launch.AngleDeg),
		strings.TrimPrefix(ext, "."),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
