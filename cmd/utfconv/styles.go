package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles renders output fragments; plainStyles leaves text untouched.
type styles struct {
	title    func(...string) string
	offset   func(...string) string
	bytes    func(...string) string
	cp       func(...string) string
	ok       func(...string) string
	err      func(...string) string
	selected func(...string) string
	help     func(...string) string
}

func colorStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).Render,
		offset:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render,
		bytes:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Render,
		cp:       lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")).Render,
		ok:       lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")).Render,
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render,
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Render,
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render,
	}
}

func plainStyles() styles {
	plain := func(strs ...string) string { return strings.Join(strs, " ") }
	return styles{
		title:    plain,
		offset:   plain,
		bytes:    plain,
		cp:       plain,
		ok:       plain,
		err:      plain,
		selected: plain,
		help:     plain,
	}
}
