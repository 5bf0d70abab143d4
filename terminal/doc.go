// Package terminal is the tcell frontend: it turns key events into game input
// and draws the arena, labels and status lines
package terminal
