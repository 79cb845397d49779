// Package ui renders terminal output for the CLI: step progress, tables,
// styles and the interactive confirmation prompt.
package ui
