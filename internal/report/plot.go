package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/convoi-data/corridor.report/internal/corridor"
)

// ProfilePlot builds the clearance profile chart: maximum sampled height per
// station against distance, with the required-height threshold line.
// Stations without height data leave gaps in the series.
func ProfilePlot(res *corridor.Result, requiredHeight float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Profil de degagement"
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Hauteur max (m)"

	heights := make(plotter.XYs, 0, len(res.Stations))
	for _, st := range res.Stations {
		if math.IsNaN(st.MaxHeight) {
			continue
		}
		heights = append(heights, plotter.XY{X: st.Distance, Y: st.MaxHeight})
	}
	heightLine, err := plotter.NewLine(heights)
	if err != nil {
		return nil, fmt.Errorf("height series: %w", err)
	}
	heightLine.Color = color.RGBA{B: 255, A: 255}

	threshold := plotter.XYs{
		{X: 0, Y: requiredHeight},
		{X: res.Summary.TotalLength, Y: requiredHeight},
	}
	thresholdLine, err := plotter.NewLine(threshold)
	if err != nil {
		return nil, fmt.Errorf("threshold series: %w", err)
	}
	thresholdLine.Color = color.RGBA{R: 255, A: 255}
	thresholdLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), heightLine, thresholdLine)
	p.Legend.Add("hauteur max", heightLine)
	p.Legend.Add("hauteur requise", thresholdLine)
	p.Legend.Top = true
	return p, nil
}

// WidthPlot builds the corridor width chart along the route.
func WidthPlot(res *corridor.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Largeur du corridor"
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Largeur (m)"

	widths := make(plotter.XYs, len(res.Stations))
	for i, st := range res.Stations {
		widths[i] = plotter.XY{X: st.Distance, Y: st.HalfWidth * 2}
	}
	line, err := plotter.NewLine(widths)
	if err != nil {
		return nil, fmt.Errorf("width series: %w", err)
	}
	line.Color = color.RGBA{G: 160, A: 255}
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

// PlanPlot builds the plan-view chart: the route through the station
// positions with the swept envelope ring around it. A run without an
// envelope plots the route alone.
func PlanPlot(res *corridor.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Vue en plan du corridor"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	if len(res.Envelope) >= 3 {
		ring := make(plotter.XYs, 0, len(res.Envelope)+1)
		for _, pt := range res.Envelope {
			ring = append(ring, plotter.XY{X: pt.X, Y: pt.Y})
		}
		ring = append(ring, ring[0]) // close the ring
		envelope, err := plotter.NewPolygon(ring)
		if err != nil {
			return nil, fmt.Errorf("envelope ring: %w", err)
		}
		envelope.Color = color.RGBA{G: 160, B: 80, A: 60}
		envelope.LineStyle.Color = color.RGBA{G: 120, B: 60, A: 255}
		p.Add(envelope)
		p.Legend.Add("emprise", envelope)
	}

	route := make(plotter.XYs, len(res.Stations))
	for i, st := range res.Stations {
		route[i] = plotter.XY{X: st.Position.X, Y: st.Position.Y}
	}
	routeLine, err := plotter.NewLine(route)
	if err != nil {
		return nil, fmt.Errorf("route series: %w", err)
	}
	routeLine.Color = color.RGBA{B: 255, A: 255}

	p.Add(plotter.NewGrid(), routeLine)
	p.Legend.Add("trace", routeLine)
	p.Legend.Top = true
	return p, nil
}

// SavePlot renders the plot to a file; the format follows the extension
// (png, svg, pdf).
func SavePlot(p *plot.Plot, path string) error {
	if err := p.Save(20*vg.Centimeter, 10*vg.Centimeter, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
