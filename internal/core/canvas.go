package core

import (
	"strings"
)

// Canvas is a character grid for the monitor's top-down view. World points
// on the XZ plane are mapped onto cells with Plot; everything outside the
// grid is clipped.
type Canvas struct {
	width  int
	height int
	cells  [][]rune

	// World distance from the center to every edge. Cells are about twice
	// as tall as wide, so a canvas twice as wide as tall looks square.
	span float32
}

// NewCanvas creates a blank canvas covering [-span, span] horizontally.
func NewCanvas(width, height int, span float32) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		span:   span,
	}
	c.cells = make([][]rune, height)
	for y := range c.cells {
		c.cells[y] = make([]rune, width)
	}
	c.Clear()
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills every cell with a space.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

// Set writes r at (x, y); out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = r
}

// Get returns the rune at (x, y), or a space when out of bounds.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y][x]
}

// Cell maps a world point to its cell. +X is right and +Z is down, so the
// default camera at +Z sits below the pyramid.
func (c *Canvas) Cell(p Vec2) (int, int) {
	if c.span <= 0 {
		return c.width / 2, c.height / 2
	}
	cx, cy := float32(c.width-1)/2, float32(c.height-1)/2
	x := cx + p.X/c.span*cx
	y := cy + p.Z/c.span*cy
	return int(x + 0.5), int(y + 0.5)
}

// Plot draws r at the cell for world point p.
func (c *Canvas) Plot(p Vec2, r rune) {
	x, y := c.Cell(p)
	c.Set(x, y, r)
}

// Line draws r along the segment from a to b.
func (c *Canvas) Line(a, b Vec2, r rune) {
	x0, y0 := c.Cell(a)
	x1, y1 := c.Cell(b)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		c.Set(x0, y0, r)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		c.Set(x, y, r)
	}
}

// DrawText writes text starting at (x, y), clipped at the edges.
func (c *Canvas) DrawText(x, y int, text string) {
	for i, r := range []rune(text) {
		c.Set(x+i, y, r)
	}
}

// DrawBox outlines r with box-drawing characters.
func (c *Canvas) DrawBox(r Rect) {
	c.Set(r.X, r.Y, '┌')
	c.Set(r.Right()-1, r.Y, '┐')
	c.Set(r.X, r.Bottom()-1, '└')
	c.Set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		c.Set(x, r.Y, '─')
		c.Set(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		c.Set(r.X, y, '│')
		c.Set(r.Right()-1, y, '│')
	}
}

// String joins the rows with newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)
	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(string(c.cells[y]))
	}
	return sb.String()
}

// Row returns row y, or spaces when out of bounds.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	return string(c.cells[y])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
