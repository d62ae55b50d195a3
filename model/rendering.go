package model

import (
	"bufio"
	"io"
	"math"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClearScreen = "\033[H\033[2J"
)

// TerminalRenderer draws a world as text rows, north at the top
type TerminalRenderer struct{}

// Display renders the world to out from a single query over its whole region
func (r *TerminalRenderer) Display(out io.Writer, w *World) error {
	rows := make([][]bool, w.height)
	for y := range rows {
		rows[y] = make([]bool, w.width)
	}
	for _, c := range w.tree.Query(w.tree.Region()) {
		x, y := int(math.Round(c.X)), int(math.Round(c.Y))
		if x >= 0 && x < w.width && y >= 0 && y < w.height && c.Data.Alive {
			rows[y][x] = true
		}
	}

	bw := bufio.NewWriter(out)
	for y := w.height - 1; y >= 0; y-- {
		for _, alive := range rows[y] {
			if alive {
				bw.WriteString(gridPosBlock)
			} else {
				bw.WriteString(gridPosEmpty)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear(out io.Writer) error {
	_, err := io.WriteString(out, ansiClearScreen)
	return err
}
