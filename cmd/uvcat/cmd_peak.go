// Package main peak command: Wien peaks and derived quantities for one
// or more temperatures.
package main

import (
	"fmt"
	"strconv"

	"uvcat/cmd/uvcat/ui"
	"uvcat/internal/physics"
	"uvcat/internal/spectrum"

	"github.com/spf13/cobra"
)

// =============================================================================
// PEAK COMMAND
// =============================================================================

var peakCmd = &cobra.Command{
	Use:   "peak [temp-k]...",
	Short: "Show Wien peaks and radiant exitance for temperatures",
	Long: `Computes, for each temperature, the Wien displacement peak, the
sampled Planck peak on the grid, the radiant exitance, and the photon
energy at the peak.

Examples:
  uvcat peak 3000 5000 5778 10000
  uvcat peak 2.725`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPeak,
}

func runPeak(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	temps := make([]float64, 0, len(args))
	for _, arg := range args {
		t, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q: %w", arg, err)
		}
		temps = append(temps, t)
	}

	grid, err := spectrum.Linspace(cfg.Grid.MinNm, cfg.Grid.MaxNm, cfg.Grid.Samples)
	if err != nil {
		return err
	}

	series, err := spectrum.ComputeBatch(cmd.Context(), spectrum.LawPlanck, temps, grid)
	if err != nil {
		return err
	}

	table := ui.NewSimpleTable("🔭 Blackbody Peaks",
		[]string{"T (K)", "Wien peak (nm)", "Grid peak (nm)", "M (W/m²)", "E@peak (eV)"})

	for i, temp := range temps {
		wienPeak, err := physics.PeakWavelength(temp)
		if err != nil {
			return fmt.Errorf("temperature %g: %w", temp, err)
		}
		exitance, _ := physics.RadiantExitance(temp)
		energy, _ := physics.PhotonEnergyEV(wienPeak)

		gridPeakNm, _, err := series[i].Peak()
		if err != nil {
			return err
		}

		table.AddRow(
			strconv.FormatFloat(temp, 'g', -1, 64),
			fmt.Sprintf("%.1f", wienPeak/spectrum.MetersPerNm),
			fmt.Sprintf("%.1f", gridPeakNm),
			fmt.Sprintf("%.4g", exitance),
			fmt.Sprintf("%.3f", energy),
		)
	}

	fmt.Print(table.View(ui.NewStyles(ui.ThemeByName(cfg.Theme))))
	return nil
}

func init() {
	rootCmd.AddCommand(peakCmd)
}
