// Package lesson holds the embedded teaching material: short markdown
// pages walking from the classical prediction to Planck's resolution,
// rendered for the terminal with glamour.
package lesson

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
)

//go:embed content/*.md
var content embed.FS

// Lesson is one teaching page.
type Lesson struct {
	Slug  string // stable identifier, e.g. "the-catastrophe"
	Order int    // reading order
	Title string // first heading of the page
	Body  string // raw markdown
}

// ordered slugs define the curriculum sequence; files not listed here
// still load but sort last.
var order = map[string]int{
	"the-catastrophe": 1,
	"rayleigh-jeans":  2,
	"plancks-fix":     3,
	"wien-and-stefan": 4,
}

// All returns every lesson in reading order.
func All() ([]Lesson, error) {
	entries, err := content.ReadDir("content")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded lessons: %w", err)
	}

	lessons := make([]Lesson, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		body, err := content.ReadFile("content/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read lesson %s: %w", slug, err)
		}

		idx, ok := order[slug]
		if !ok {
			idx = len(order) + 1
		}
		lessons = append(lessons, Lesson{
			Slug:  slug,
			Order: idx,
			Title: firstHeading(string(body)),
			Body:  string(body),
		})
	}

	sort.Slice(lessons, func(i, j int) bool {
		if lessons[i].Order != lessons[j].Order {
			return lessons[i].Order < lessons[j].Order
		}
		return lessons[i].Slug < lessons[j].Slug
	})
	return lessons, nil
}

// Get returns the lesson with the given slug.
func Get(slug string) (Lesson, error) {
	lessons, err := All()
	if err != nil {
		return Lesson{}, err
	}
	for _, l := range lessons {
		if l.Slug == slug {
			return l, nil
		}
	}

	slugs := make([]string, len(lessons))
	for i, l := range lessons {
		slugs[i] = l.Slug
	}
	return Lesson{}, fmt.Errorf("lesson %q not found (have: %s)", slug, strings.Join(slugs, ", "))
}

// Render returns the lesson body styled for the terminal at the given
// wrap width.
func (l Lesson) Render(width int) (string, error) {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(l.Body)
	if err != nil {
		return "", fmt.Errorf("failed to render lesson %s: %w", l.Slug, err)
	}
	return out, nil
}

// firstHeading extracts the first markdown heading as the title.
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return "(untitled)"
}
