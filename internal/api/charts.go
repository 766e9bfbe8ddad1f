package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/convoi-data/corridor.report/internal/httputil"
	"github.com/convoi-data/corridor.report/internal/units"
)

// clearanceChart renders an HTML line chart of the maximum obstacle height
// along the route against the required clearance. Stations without height
// data are left as gaps in the series.
func (s *Server) clearanceChart(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	axis := make([]string, 0, len(run.Stations))
	heights := make([]opts.LineData, 0, len(run.Stations))
	threshold := make([]opts.LineData, 0, len(run.Stations))
	for _, st := range run.Stations {
		axis = append(axis, units.FormatDistance(st.Distance, s.units))
		if st.MaxHeight != nil {
			heights = append(heights, opts.LineData{Value: *st.MaxHeight})
		} else {
			heights = append(heights, opts.LineData{Value: "-"})
		}
		threshold = append(threshold, opts.LineData{Value: run.RequiredHeight})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Clearance profile", Width: "1200px", Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Clearance profile — %s", run.Profile),
			Subtitle: fmt.Sprintf("run=%s stations=%d obstacles=%d", run.ID, run.StationCount, run.ObstacleCount),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "height (m)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "chainage"}),
	)
	line.SetXAxis(axis).
		AddSeries("max obstacle height", heights).
		AddSeries("required clearance", threshold,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))

	s.renderChart(w, line)
}

// widthChart renders the dynamic corridor width and the lateral sweep along
// the route.
func (s *Server) widthChart(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	axis := make([]string, 0, len(run.Stations))
	widths := make([]opts.LineData, 0, len(run.Stations))
	sweeps := make([]opts.LineData, 0, len(run.Stations))
	for _, st := range run.Stations {
		axis = append(axis, units.FormatDistance(st.Distance, s.units))
		widths = append(widths, opts.LineData{Value: 2 * st.HalfWidth})
		sweeps = append(sweeps, opts.LineData{Value: st.Sweep})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Corridor width", Width: "1200px", Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Corridor width — %s", run.Profile),
			Subtitle: fmt.Sprintf("run=%s max width=%.1f m", run.ID, run.MaxWidth),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "width (m)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "chainage"}),
	)
	line.SetXAxis(axis).
		AddSeries("corridor width", widths).
		AddSeries("lateral sweep", sweeps)

	s.renderChart(w, line)
}

type renderable interface {
	Render(w io.Writer) error
}

func (s *Server) renderChart(w http.ResponseWriter, chart renderable) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("Failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
