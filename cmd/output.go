package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
	"github.com/1F47E/geo-index-kdtree/pkg/kdtree"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(0, 2)

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))
)

var printer = message.NewPrinter(language.English)

// count renders n with thousands separators.
func count(n int) string {
	return printer.Sprintf("%d", n)
}

func printTitle(title string) {
	fmt.Println(titleStyle.Render(title))
}

// printStats renders label/value pairs inside a bordered box.
func printStats(title string, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%-*s", width, r[0])))
		b.WriteString("  ")
		b.WriteString(statStyle.Render(r[1]))
	}
	fmt.Println(boxStyle.Render(b.String()))
}

// placeName returns the "name" attribute of a payload, if any.
func placeName(data map[string]any) string {
	if name, ok := data["name"]; ok {
		return fmt.Sprint(name)
	}
	return ""
}

// printRecords lists records; with a center, each line carries its distance in km.
func printRecords(records []kdtree.Record[string, map[string]any], center *geo.Point) {
	if len(records) == 0 {
		fmt.Println(infoStyle.Render("No places found"))
		return
	}

	for _, rec := range records {
		line := fmt.Sprintf("%-12s %s", rec.ID(), rec.Point())
		if center != nil {
			line += fmt.Sprintf("  %8.3f km", geo.Distance(*center, rec.Point()))
		}
		if name := placeName(rec.Payload()); name != "" {
			line += "  " + dimStyle.Render(name)
		}
		fmt.Println(line)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("\n%s places found", count(len(records)))))
}
