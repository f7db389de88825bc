package viz

import (
	"strings"

	"github.com/san-kum/isingsim/internal/lattice"
)

// Each Braille glyph is a 2x4 block of dots. dotBits[y][x] is the bit of the
// dot in sub-row y and sub-column x, offset from U+2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBlank rune = 0x2800

// Canvas packs a dot matrix into Braille glyphs, so one terminal cell shows
// 2x4 lattice sites.
type Canvas struct {
	cols, rows int
	cells      []rune
}

// CanvasFor returns the smallest canvas holding one dot per site of a
// rows x columns lattice.
func CanvasFor(rows, columns int) *Canvas {
	c := &Canvas{cols: (columns + 1) / 2, rows: (rows + 3) / 4}
	c.cells = make([]rune, c.cols*c.rows)
	c.Clear()
	return c
}

// Size is the canvas extent in glyphs.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Glyph returns the rune at glyph position (col, row).
func (c *Canvas) Glyph(col, row int) rune { return c.cells[row*c.cols+col] }

// Dot raises the dot at (x, y); out-of-range coordinates are ignored.
func (c *Canvas) Dot(x, y int) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

// DrawLattice clears the canvas and raises one dot per up spin.
func DrawLattice[S lattice.Spin, P lattice.Observable](c *Canvas, l *lattice.Lattice[S, P]) {
	c.Clear()
	for i := 0; i < l.Rows(); i++ {
		for j, s := range l.Row(i) {
			if s > 0 {
				c.Dot(j, i)
			}
		}
	}
}

// String renders the canvas, one line per glyph row.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols*3 + 1))
	for r := 0; r < c.rows; r++ {
		b.WriteString(string(c.cells[r*c.cols : (r+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}
