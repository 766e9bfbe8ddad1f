// Package report renders analysis results for human and GIS consumption:
// the flat station CSV, the text report, GeoJSON features and plots.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/convoi-data/corridor.report/internal/corridor"
)

// csvHeader lists the station table columns in output order.
var csvHeader = []string{
	"station", "distance_m", "x", "y",
	"max_height_m", "mean_height_m", "clearance_ok",
	"curve_radius_m", "dynamic_half_width_m", "lateral_sweep_m",
}

// WriteCSV writes one row per station. Undefined heights render as empty
// cells; an infinite curve radius is encoded as -1.
func WriteCSV(w io.Writer, stations []corridor.StationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, st := range stations {
		row := []string{
			strconv.Itoa(st.Index),
			formatFloat(st.Distance),
			formatFloat(st.Position.X),
			formatFloat(st.Position.Y),
			formatHeight(st.MaxHeight),
			formatHeight(st.MeanHeight),
			strconv.FormatBool(st.ClearanceOK),
			formatFloat(EncodeRadius(st.CurveRadius)),
			formatFloat(st.HalfWidth),
			formatFloat(st.Sweep),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", st.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeRadius maps the in-memory radius to its flat-file encoding: -1
// stands for an infinite (straight) radius.
func EncodeRadius(radius float64) float64 {
	if math.IsInf(radius, 1) {
		return -1
	}
	return radius
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatHeight(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return formatFloat(v)
}
