package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/convoi-data/corridor.report/internal/corridor"
	"github.com/convoi-data/corridor.report/internal/units"
	"github.com/convoi-data/corridor.report/internal/vehicle"
)

// maxReportedObstacles bounds the per-obstacle detail in the text report.
const maxReportedObstacles = 20

// RunInfo bundles a result with the inputs that produced it, for reporting.
type RunInfo struct {
	Profile        vehicle.Profile
	Spec           vehicle.Spec
	RequiredHeight float64
	Result         *corridor.Result
}

// WriteText renders the analysis report. The verdict lines keep the wording
// the survey teams expect on printed reports.
func WriteText(w io.Writer, info RunInfo) error {
	res := info.Result
	rule := strings.Repeat("=", 70)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "RAPPORT D'ANALYSE - TRANSPORT EXCEPTIONNEL EOLIENNES\n")
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "Type de pale: %s\n", info.Profile.Name)
	fmt.Fprintf(&b, "Longueur pale: %gm\n", info.Profile.BladeLength)
	fmt.Fprintf(&b, "Largeur de base: %gm\n", info.Spec.StaticWidth)
	fmt.Fprintf(&b, "Hauteur requise: < %gm\n\n", info.RequiredHeight)

	fmt.Fprintf(&b, "Longueur totale trace: %.1fm\n", res.Summary.TotalLength)
	fmt.Fprintf(&b, "Nombre de stations: %d\n\n", res.Summary.StationCount)
	fmt.Fprintf(&b, "Largeur maximale requise: %.2fm\n\n", res.Summary.MaxCorridorWidth)

	if res.Summary.Cancelled {
		fmt.Fprintf(&b, "ATTENTION: analyse interrompue, resultats partiels.\n\n")
	}
	if res.Summary.NoDataStations > 0 {
		fmt.Fprintf(&b, "Stations sans donnees de hauteur: %d (considerees degagees)\n\n",
			res.Summary.NoDataStations)
	}

	if res.Summary.Passable() {
		fmt.Fprintf(&b, "RESULTAT: PASSAGE POSSIBLE\n")
		fmt.Fprintf(&b, "Aucun obstacle detecte.\n")
	} else {
		fmt.Fprintf(&b, "RESULTAT: %d OBSTACLES DETECTES\n\n", res.Summary.ObstacleCount)
		fmt.Fprintf(&b, "DETAIL DES OBSTACLES:\n")
		for i, ob := range res.Obstacles {
			if i >= maxReportedObstacles {
				fmt.Fprintf(&b, "\n  (+%d autres obstacles)\n", len(res.Obstacles)-maxReportedObstacles)
				break
			}
			fmt.Fprintf(&b, "\n  Obstacle #%d:\n", i+1)
			fmt.Fprintf(&b, "    %s\n", units.FormatPK(ob.Distance))
			fmt.Fprintf(&b, "    Hauteur: %.2fm\n", ob.MaxHeight)
			fmt.Fprintf(&b, "    Depassement: +%.2fm\n", ob.Exceedance)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
