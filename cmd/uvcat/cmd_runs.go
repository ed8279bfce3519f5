// Package main runs commands: list, inspect, export, and clean up
// saved spectrum runs.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"uvcat/cmd/uvcat/ui"
	"uvcat/internal/export"
	"uvcat/internal/store"

	"github.com/spf13/cobra"
)

// =============================================================================
// RUN STORE COMMANDS
// =============================================================================

var (
	runsExport    string
	runsOlderThan = ageFlag{d: 30 * 24 * time.Hour}
)

// ageFlag is a duration flag that also accepts a day suffix ("30d"),
// which time.ParseDuration lacks.
type ageFlag struct {
	d time.Duration
}

func (a *ageFlag) String() string { return a.d.String() }

func (a *ageFlag) Type() string { return "duration" }

func (a *ageFlag) Set(s string) error {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return fmt.Errorf("invalid day count %q", s)
		}
		a.d = time.Duration(days * 24 * float64(time.Hour))
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	a.d = d
	return nil
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage saved spectrum runs",
	Long: `List and manage runs saved from the explorer or from compare --save.

Subcommands:
  list   - List all saved runs
  show   - Show one run's curves and stats
  delete - Delete a run
  prune  - Delete runs older than a duration`,
	RunE: runRunsList,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run's curves and stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than a duration",
	RunE:  runRunsPrune,
}

func openRunStore() (*store.RunStore, error) {
	return store.Open(store.DefaultPath(resolveWorkspace()))
}

func runRunsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rs, err := openRunStore()
	if err != nil {
		return err
	}
	defer rs.Close()

	summaries, err := rs.ListRuns()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No saved runs. Use 's' in the explorer or 'uvcat compare --save'.")
		return nil
	}

	table := ui.NewSimpleTable("💾 Saved Runs",
		[]string{"ID", "Created", "T (K)", "Laws", "Note"})
	for _, s := range summaries {
		table.AddRow(
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.FormatFloat(s.Temperature, 'g', -1, 64),
			strings.Join(s.Laws, ","),
			s.Note,
		)
	}

	fmt.Print(table.View(ui.NewStyles(ui.ThemeByName(cfg.Theme))))
	fmt.Printf("\nTotal: %d runs\n", len(summaries))
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rs, err := openRunStore()
	if err != nil {
		return err
	}
	defer rs.Close()

	run, err := rs.GetRun(args[0])
	if err != nil {
		return err
	}

	if runsExport != "" {
		if err := export.WriteFile(runsExport, run.Series...); err != nil {
			return err
		}
		fmt.Printf("✅ Exported run %s to %s\n", run.ID, runsExport)
		return nil
	}

	fmt.Printf("Run %s  (%s)\n", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"))
	if run.Note != "" {
		fmt.Printf("Note: %s\n", run.Note)
	}

	if len(run.Series) > 0 {
		grid := run.Series[0].WavelengthsNm
		if err := printChart(cfg, grid, 0, run.Series...); err != nil {
			return err
		}
	}

	printTempSummary(run.Temperature)
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	rs, err := openRunStore()
	if err != nil {
		return err
	}
	defer rs.Close()

	if err := rs.DeleteRun(args[0]); err != nil {
		return err
	}
	fmt.Printf("🗑️  Deleted run %s\n", args[0])
	return nil
}

func runRunsPrune(cmd *cobra.Command, args []string) error {
	rs, err := openRunStore()
	if err != nil {
		return err
	}
	defer rs.Close()

	n, err := rs.Prune(runsOlderThan.d)
	if err != nil {
		return err
	}
	fmt.Printf("🗑️  Pruned %d runs older than %s\n", n, runsOlderThan.String())
	return nil
}

func init() {
	runsShowCmd.Flags().StringVar(&runsExport, "export", "", "Export the run to a .csv or .json file instead of charting")
	runsPruneCmd.Flags().Var(&runsOlderThan, "older-than", "Age threshold for pruning, e.g. 30d or 720h")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd, runsPruneCmd)
	rootCmd.AddCommand(runsCmd)
}
