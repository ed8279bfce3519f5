// Package main compare command: Planck against the classical
// Rayleigh-Jeans prediction, with the divergence report.
package main

import (
	"fmt"

	"uvcat/internal/config"
	"uvcat/internal/export"
	"uvcat/internal/spectrum"
	"uvcat/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// COMPARE COMMAND
// =============================================================================

var (
	compareTemp      float64
	compareWien      bool
	compareRaw       bool
	compareThreshold float64
	compareExport    string
	compareSave      bool
	compareNote      string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare Planck's law with the classical prediction",
	Long: `Charts Planck's law against the Rayleigh-Jeans law at the same
temperature and reports where the classical curve diverges into the
ultraviolet catastrophe.

By default the curves are scaled for display: Planck is normalized to a
peak of 1 and the classical curve is anchored to match it at the
configured anchor wavelength. Use --raw for unscaled radiance.

Examples:
  uvcat compare --temp 5000
  uvcat compare --temp 5000 --wien
  uvcat compare --temp 5000 --save --note "lecture demo"`,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	temp := resolveTemp(cmd, cfg, compareTemp)
	threshold := cfg.DivergenceThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = compareThreshold
	}

	grid, err := spectrum.Linspace(cfg.Grid.MinNm, cfg.Grid.MaxNm, cfg.Grid.Samples)
	if err != nil {
		return err
	}

	laws := []spectrum.Law{spectrum.LawPlanck, spectrum.LawRayleighJeans}
	if compareWien {
		laws = append(laws, spectrum.LawWien)
	}

	var series []*spectrum.Series
	for _, law := range laws {
		s, err := spectrum.Compute(law, temp, grid)
		if err != nil {
			return err
		}
		series = append(series, s)
	}
	planck, classical := series[0], series[1]

	yMax := 0.0
	if !compareRaw {
		if _, err := planck.Normalize(); err != nil {
			return err
		}
		for _, s := range series[1:] {
			if err := s.AnchorTo(planck, cfg.AnchorNm); err != nil {
				return err
			}
		}
		yMax = 1.2 // headroom so the blow-up visibly exits the frame
	}

	report, err := spectrum.Diverge(planck, classical, threshold)
	if err != nil {
		return err
	}
	logger.Info("divergence computed",
		zap.Float64("temperature_k", temp),
		zap.Float64("max_ratio", report.MaxRatio))

	if compareExport != "" {
		if err := export.WriteFile(compareExport, series...); err != nil {
			return err
		}
		fmt.Printf("✅ Exported %d curves to %s\n", len(series), compareExport)
	}

	if err := printChart(cfg, grid, yMax, series...); err != nil {
		return err
	}

	printDivergence(report)
	printTempSummary(temp)

	if compareSave {
		note := compareNote
		if note == "" {
			note = "saved from compare"
		}
		return saveRun(cfg, temp, note, series)
	}
	return nil
}

// printDivergence reports where the classical curve leaves reality.
func printDivergence(r *spectrum.DivergenceReport) {
	fmt.Printf("\n☢️  Classical divergence (threshold %gx)\n", r.Threshold)
	if r.Found {
		fmt.Printf("   Catastrophe onset: %.0f nm\n", r.CatastropheNm)
	} else {
		fmt.Println("   No divergence above the threshold on this grid.")
	}
	fmt.Printf("   Max ratio on grid: %.3g\n", r.MaxRatio)
}

// saveRun persists computed curves to the run store.
func saveRun(cfg *config.Config, temp float64, note string, series []*spectrum.Series) error {
	rs, err := store.Open(store.DefaultPath(resolveWorkspace()))
	if err != nil {
		return err
	}
	defer rs.Close()

	id, err := rs.SaveRun(&store.Run{
		Temperature: temp,
		MinNm:       cfg.Grid.MinNm,
		MaxNm:       cfg.Grid.MaxNm,
		Samples:     cfg.Grid.Samples,
		Note:        note,
		Series:      series,
	})
	if err != nil {
		return err
	}
	fmt.Printf("💾 Saved run %s\n", id)
	return nil
}

func init() {
	compareCmd.Flags().Float64VarP(&compareTemp, "temp", "t", 5000, "Temperature in kelvin")
	compareCmd.Flags().BoolVar(&compareWien, "wien", false, "Also chart Wien's approximation")
	compareCmd.Flags().BoolVar(&compareRaw, "raw", false, "Chart raw radiance without display scaling")
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 10, "Divergence ratio threshold")
	compareCmd.Flags().StringVar(&compareExport, "export", "", "Export to a .csv or .json file")
	compareCmd.Flags().BoolVar(&compareSave, "save", false, "Persist the curves to the run store")
	compareCmd.Flags().StringVar(&compareNote, "note", "", "Note to store with a saved run")

	rootCmd.AddCommand(compareCmd)
}
