package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
	testStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	resultStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 1)
)

func printHeader(text string) {
	fmt.Println(headerStyle.Render(text))
	fmt.Println()
}

func printTestHeader(text string) {
	fmt.Println(testStyle.Render("[TEST] " + text))
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Println(successStyle.Render("✓ " + text))
}

func printError(text string) {
	fmt.Println(errorStyle.Render("✗ " + text))
}

func printResult(title string, text string) {
	fmt.Println()
	fmt.Println(labelStyle.Render(title))
	fmt.Println(resultStyle.Render(strings.TrimSpace(text)))
}

func printJSON(label string, data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return
	}
	fmt.Printf("\n%s\n%s\n", labelStyle.Render(label), pretty.String())
}
