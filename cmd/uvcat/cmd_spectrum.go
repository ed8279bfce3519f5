// Package main spectrum command: compute and chart a single radiance
// law over a wavelength grid.
package main

import (
	"fmt"
	"strings"

	"uvcat/cmd/uvcat/ui"
	"uvcat/internal/config"
	"uvcat/internal/export"
	"uvcat/internal/physics"
	"uvcat/internal/spectrum"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// SPECTRUM COMMAND
// =============================================================================

var (
	spectrumLaw       string
	spectrumTemp      float64
	spectrumMinNm     float64
	spectrumMaxNm     float64
	spectrumSamples   int
	spectrumNormalize bool
	spectrumNoChart   bool
	spectrumSave      bool
	spectrumExport    string
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Chart the spectral radiance of one or more laws",
	Long: `Computes spectral radiance over a wavelength grid and draws it as a
terminal chart. --law takes a comma-separated list.

Examples:
  uvcat spectrum --temp 5000
  uvcat spectrum --law planck,rayleigh-jeans --temp 3000
  uvcat spectrum --temp 5778 --export sun.csv`,
	RunE: runSpectrum,
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGridFlags(cmd, cfg)

	var laws []spectrum.Law
	for _, name := range strings.Split(spectrumLaw, ",") {
		law, err := spectrum.ParseLaw(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		laws = append(laws, law)
	}

	temp := resolveTemp(cmd, cfg, spectrumTemp)
	logger.Info("computing spectrum",
		zap.String("laws", spectrumLaw),
		zap.Float64("temperature_k", temp))

	grid, err := spectrum.Linspace(cfg.Grid.MinNm, cfg.Grid.MaxNm, cfg.Grid.Samples)
	if err != nil {
		return err
	}

	var series []*spectrum.Series
	for _, law := range laws {
		s, err := spectrum.Compute(law, temp, grid)
		if err != nil {
			return err
		}
		if spectrumNormalize {
			if _, err := s.Normalize(); err != nil {
				return err
			}
		}
		series = append(series, s)
	}

	if spectrumExport != "" {
		if err := export.WriteFile(spectrumExport, series...); err != nil {
			return err
		}
		fmt.Printf("✅ Exported %d samples to %s\n", len(grid), spectrumExport)
	}

	if !spectrumNoChart {
		if err := printChart(cfg, grid, 0, series...); err != nil {
			return err
		}
	}

	printTempSummary(temp)

	if spectrumSave {
		return saveRun(cfg, temp, "saved from spectrum", series)
	}
	return nil
}

// =============================================================================
// SHARED CHART/STATS HELPERS
// =============================================================================

// printChart draws series on a chart sized from the config. A yMax of
// zero autoscales.
func printChart(cfg *config.Config, grid []float64, yMax float64, series ...*spectrum.Series) error {
	chart := &ui.Chart{
		Width:           cfg.Chart.Width,
		Height:          cfg.Chart.Height,
		Styles:          ui.NewStyles(ui.ThemeByName(cfg.Theme)),
		WavelengthsNm:   grid,
		ShowVisibleBand: true,
		YMax:            yMax,
	}
	for i, s := range series {
		chart.Series = append(chart.Series, ui.NewChartSeries(s.Law.Label(), s.Values, i))
	}

	out, err := chart.Render()
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	fmt.Print(out)
	return nil
}

// printTempSummary prints the derived quantities for a temperature.
func printTempSummary(tempK float64) {
	peak, err := physics.PeakWavelength(tempK)
	if err != nil {
		return
	}
	exitance, _ := physics.RadiantExitance(tempK)
	energy, _ := physics.PhotonEnergyEV(peak)

	fmt.Printf("\n🌡️  T = %.0f K\n", tempK)
	fmt.Printf("   Wien peak:        %.1f nm\n", peak/spectrum.MetersPerNm)
	fmt.Printf("   Radiant exitance: %.4g W/m²\n", exitance)
	fmt.Printf("   Photon @ peak:    %.3f eV\n", energy)
}

// applyGridFlags lets --min-nm/--max-nm/--samples override the config.
func applyGridFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("min-nm") {
		cfg.Grid.MinNm = spectrumMinNm
	}
	if cmd.Flags().Changed("max-nm") {
		cfg.Grid.MaxNm = spectrumMaxNm
	}
	if cmd.Flags().Changed("samples") {
		cfg.Grid.Samples = spectrumSamples
	}
}

// resolveTemp prefers an explicit --temp over the config value.
func resolveTemp(cmd *cobra.Command, cfg *config.Config, flagVal float64) float64 {
	if cmd.Flags().Changed("temp") {
		return flagVal
	}
	return cfg.Temperature
}

func init() {
	spectrumCmd.Flags().StringVar(&spectrumLaw, "law", "planck", "Radiance law: planck, rayleigh-jeans, wien")
	spectrumCmd.Flags().Float64VarP(&spectrumTemp, "temp", "t", 5000, "Temperature in kelvin")
	spectrumCmd.Flags().Float64Var(&spectrumMinNm, "min-nm", 1, "Grid start wavelength in nm")
	spectrumCmd.Flags().Float64Var(&spectrumMaxNm, "max-nm", 3000, "Grid end wavelength in nm")
	spectrumCmd.Flags().IntVar(&spectrumSamples, "samples", 1000, "Number of grid samples")
	spectrumCmd.Flags().BoolVar(&spectrumNormalize, "normalize", false, "Scale the curve so its peak is 1")
	spectrumCmd.Flags().BoolVar(&spectrumNoChart, "no-chart", false, "Skip the chart output")
	spectrumCmd.Flags().BoolVar(&spectrumSave, "save", false, "Persist the curves to the run store")
	spectrumCmd.Flags().StringVar(&spectrumExport, "export", "", "Export to a .csv or .json file")

	rootCmd.AddCommand(spectrumCmd)
}
