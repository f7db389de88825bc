package export

import (
	"fmt"
	"html"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/isingsim/internal/lattice"
)

// LatticeToSVG draws one square of side cell per spin. Consecutive equal
// spins in a row are merged into a single rect.
func LatticeToSVG[S lattice.Spin, P lattice.Observable](l *lattice.Lattice[S, P], cell float64, upColor, downColor string) string {
	if l == nil || cell <= 0 {
		return ""
	}

	rows, columns := l.Shape()
	width := float64(columns) * cell
	height := float64(rows) * cell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, downColor, upColor))

	for i := 0; i < rows; i++ {
		row := l.Row(i)
		for j := 0; j < columns; {
			if row[j] <= 0 {
				j++
				continue
			}
			run := 1
			for j+run < columns && row[j+run] > 0 {
				run++
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(j)*cell, float64(i)*cell, float64(run)*cell, cell))
			j += run
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CurveToSVG plots values against temps as a polyline with point markers.
func CurveToSVG(temps, values []float64, width, height int, strokeColor, title string) string {
	if len(temps) < 2 || len(temps) != len(values) {
		return ""
	}

	minX, maxX := floats.Min(temps), floats.Max(temps)
	minY, maxY := floats.Min(values), floats.Max(values)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(t, v float64) (float64, float64) {
		x := (t - minX) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="16" fill="#cccccc" font-family="monospace" font-size="12">%s</text>
`, html.EscapeString(title)))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i := range temps {
		x, y := project(temps[i], values[i])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", strokeColor))
	for i := range temps {
		x, y := project(temps[i], values[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5"/>
`, x, y))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
