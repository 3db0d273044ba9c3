// Package ui renders teardown results for the terminal.
package ui
