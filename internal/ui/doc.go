// Package ui holds the color themes shared by the plain and full-screen front
// ends: ANSI escape sequences for line output and lipgloss colors for the
// bubbletea views. NO_COLOR and --no-color select a colorless theme.
package ui
