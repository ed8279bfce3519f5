// Package main lesson commands: the built-in curriculum on blackbody
// radiation and the ultraviolet catastrophe.
package main

import (
	"fmt"
	"strings"

	"uvcat/internal/lesson"

	"github.com/spf13/cobra"
)

// =============================================================================
// LESSON COMMANDS
// =============================================================================

var lessonWidth int

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Read the built-in physics lessons",
	Long: `Short lessons explaining blackbody radiation, the classical
Rayleigh-Jeans prediction, the ultraviolet catastrophe, and Planck's
quantum fix.

Subcommands:
  list   - List the lessons in curriculum order
  show   - Render one lesson in the terminal`,
	RunE: runLessonList,
}

var lessonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the lessons in curriculum order",
	RunE:  runLessonList,
}

var lessonShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Render one lesson in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runLessonShow,
}

func runLessonList(cmd *cobra.Command, args []string) error {
	lessons, err := lesson.All()
	if err != nil {
		return err
	}

	fmt.Println("📚 Lessons")
	fmt.Println(strings.Repeat("─", 50))
	for _, l := range lessons {
		fmt.Printf("  %d. %-18s %s\n", l.Order, l.Slug, l.Title)
	}
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println("\nUse: uvcat lesson show <slug>")
	return nil
}

func runLessonShow(cmd *cobra.Command, args []string) error {
	l, err := lesson.Get(args[0])
	if err != nil {
		return err
	}

	out, err := l.Render(lessonWidth)
	if err != nil {
		return fmt.Errorf("failed to render lesson: %w", err)
	}
	fmt.Print(out)
	return nil
}

func init() {
	lessonShowCmd.Flags().IntVar(&lessonWidth, "width", 80, "Render width in columns")

	lessonCmd.AddCommand(lessonListCmd, lessonShowCmd)
	rootCmd.AddCommand(lessonCmd)
}
