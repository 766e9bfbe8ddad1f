// Command corridor runs one corridor clearance analysis end to end: it
// densifies the route, widens the corridor through curves, samples the
// height raster across each transversal, and writes the CSV, text,
// GeoJSON and chart outputs. When a database path is given the run is
// also recorded for the corridor-server API.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/convoi-data/corridor.report/internal/config"
	"github.com/convoi-data/corridor.report/internal/corridor"
	"github.com/convoi-data/corridor.report/internal/db"
	"github.com/convoi-data/corridor.report/internal/raster"
	"github.com/convoi-data/corridor.report/internal/report"
	"github.com/convoi-data/corridor.report/internal/route"
	"github.com/convoi-data/corridor.report/internal/vehicle"
	"github.com/convoi-data/corridor.report/internal/version"
)

var (
	routePath   = flag.String("route", "", "route file (.geojson or .csv), required")
	rasterPath  = flag.String("mnh", "", "height raster file (.asc), required")
	profileName = flag.String("profile", "", "blade profile ("+vehicle.Names()+")")
	bladeLength = flag.Float64("blade", 0, "blade length in metres (overrides -profile)")
	width       = flag.Float64("width", 0, "convoy width in metres (with -blade)")
	height      = flag.Float64("height", 0, "required vertical clearance in metres")
	spacing     = flag.Float64("spacing", 0, "station spacing in metres")
	samples     = flag.Int("samples", 0, "height samples per transversal profile")
	configPath  = flag.String("config", "", "JSON defaults file")
	outDir      = flag.String("out", ".", "output directory")
	dbPath      = flag.String("db", "", "sqlite database to record the run in (optional)")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *routePath == "" || *rasterPath == "" {
		log.Fatal("both -route and -mnh are required")
	}

	cfg := config.EmptyAnalysisConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAnalysisConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	profile, err := resolveProfile(cfg)
	if err != nil {
		log.Fatalf("failed to resolve vehicle profile: %v", err)
	}
	spec := profile.Spec()

	requiredHeight := cfg.GetRequiredHeight()
	if *height > 0 {
		requiredHeight = *height
	}
	stationSpacing := cfg.GetStationSpacing()
	if *spacing > 0 {
		stationSpacing = *spacing
	}
	profileSamples := cfg.GetSamplesPerProfile()
	if *samples > 0 {
		profileSamples = *samples
	}

	line, err := route.Load(*routePath)
	if err != nil {
		log.Fatalf("failed to load route: %v", err)
	}

	grid, err := raster.OpenASC(*rasterPath)
	if err != nil {
		log.Fatalf("failed to open height raster: %v", err)
	}
	rows, cols := grid.Dims()
	log.Printf("loaded raster %dx%d, route with %d vertices", rows, cols, len(line))
	log.Printf("profile %s: blade %.0f m, width %.1f m, sweep length %.1f m",
		profile.Name, profile.BladeLength, profile.Width, spec.SweepLength)

	analyzer, err := corridor.NewAnalyzer(corridor.Config{
		Vehicle:           spec,
		RequiredHeight:    requiredHeight,
		Spacing:           stationSpacing,
		SamplesPerProfile: profileSamples,
		Progress:          logProgress,
	})
	if err != nil {
		log.Fatalf("invalid analysis parameters: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := analyzer.Run(ctx, line, grid)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	if res.Summary.Cancelled {
		log.Printf("analysis interrupted after %d stations; writing partial results", res.Summary.StationCount)
	}

	info := report.RunInfo{
		Profile:        profile,
		Spec:           spec,
		RequiredHeight: requiredHeight,
		Result:         res,
	}

	if err := writeOutputs(info); err != nil {
		log.Fatalf("failed to write outputs: %v", err)
	}

	if *dbPath != "" {
		// Record with a fresh context so an interrupt still persists the
		// partial run.
		if err := recordRun(context.Background(), info, stationSpacing); err != nil {
			log.Fatalf("failed to record run: %v", err)
		}
	}

	if res.Summary.Passable() {
		log.Printf("verdict: PASSAGE POSSIBLE (%d stations, %.0f m)",
			res.Summary.StationCount, res.Summary.TotalLength)
	} else {
		log.Printf("verdict: %d obstacle(s), worst exceedance %.2f m",
			res.Summary.ObstacleCount, res.Summary.WorstExceedance)
	}
}

// resolveProfile picks the convoy geometry: -blade/-width win over -profile,
// which wins over the config default.
func resolveProfile(cfg *config.AnalysisConfig) (vehicle.Profile, error) {
	if *bladeLength > 0 {
		w := *width
		if w == 0 {
			w = vehicle.Profiles["N117"].Width
		}
		name := fmt.Sprintf("custom-%.0fm", *bladeLength)
		return vehicle.Profile{Name: name, BladeLength: *bladeLength, Width: w}, nil
	}
	name := cfg.GetBladeProfile()
	if *profileName != "" {
		name = *profileName
	}
	return vehicle.Lookup(name)
}

func logProgress(done, total int) {
	if total >= 10 && done%(total/10) == 0 {
		log.Printf("analysed %d/%d stations", done, total)
	}
}

func writeOutputs(info report.RunInfo) error {
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	res := info.Result

	csvFile, err := os.Create(filepath.Join(*outDir, "stations.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()
	if err := report.WriteCSV(csvFile, res.Stations); err != nil {
		return fmt.Errorf("write station CSV: %w", err)
	}

	textFile, err := os.Create(filepath.Join(*outDir, "rapport.txt"))
	if err != nil {
		return err
	}
	defer textFile.Close()
	if err := report.WriteText(textFile, info); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	geoFile, err := os.Create(filepath.Join(*outDir, "analysis.geojson"))
	if err != nil {
		return err
	}
	defer geoFile.Close()
	if err := report.WriteGeoJSON(geoFile, analysisFeatures(info)); err != nil {
		return fmt.Errorf("write GeoJSON: %w", err)
	}

	profilePlot, err := report.ProfilePlot(res, info.RequiredHeight)
	if err != nil {
		return fmt.Errorf("build clearance plot: %w", err)
	}
	if err := report.SavePlot(profilePlot, filepath.Join(*outDir, "clearance.png")); err != nil {
		return err
	}

	widthPlot, err := report.WidthPlot(res)
	if err != nil {
		return fmt.Errorf("build width plot: %w", err)
	}
	if err := report.SavePlot(widthPlot, filepath.Join(*outDir, "width.png")); err != nil {
		return err
	}

	planPlot, err := report.PlanPlot(res)
	if err != nil {
		return fmt.Errorf("build plan plot: %w", err)
	}
	if err := report.SavePlot(planPlot, filepath.Join(*outDir, "plan.png")); err != nil {
		return err
	}

	log.Printf("wrote stations.csv, rapport.txt, analysis.geojson and charts to %s", *outDir)
	return nil
}

func analysisFeatures(info report.RunInfo) []report.Feature {
	res := info.Result
	features := make([]report.Feature, 0, len(res.Stations)+len(res.Obstacles)+1)
	if len(res.Envelope) > 0 {
		features = append(features, report.EnvelopeFeature(res.Envelope, info.Profile.Name, info))
	}
	features = append(features, report.StationFeatures(res.Stations)...)
	features = append(features, report.ObstacleFeatures(res.Obstacles)...)
	return features
}

func recordRun(ctx context.Context, info report.RunInfo, stationSpacing float64) error {
	database, err := db.NewDB(*dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	envelope := ""
	if res := info.Result; len(res.Envelope) > 0 {
		var buf bytes.Buffer
		feature := report.EnvelopeFeature(res.Envelope, info.Profile.Name, info)
		if err := report.WriteGeoJSON(&buf, []report.Feature{feature}); err != nil {
			return fmt.Errorf("serialize envelope: %w", err)
		}
		envelope = strings.TrimSpace(buf.String())
	}

	run := db.RunFromResult(db.NewRunID(), info.Profile, info.RequiredHeight, stationSpacing, info.Result, envelope)
	if err := database.InsertRun(ctx, run); err != nil {
		return err
	}
	log.Printf("recorded run %s in %s", run.ID, *dbPath)
	return nil
}
