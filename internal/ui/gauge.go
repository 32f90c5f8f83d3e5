package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"armkeys.klederson.com/internal/orientation"
)

// RenderYawGauge renders a dial whose needle shows how far the armband has
// turned from its baseline heading. The baseline sits at the top (B); each
// bucket step is 20 degrees. Needle length follows pitch: lowered arm, long
// needle.
func RenderYawGauge(width, height int, current, baseline orientation.Buckets) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	isNeedle := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		isNeedle[i] = make([]bool, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := math.Max(fcx-2.0, 3) // horizontal radius in columns
	ry := math.Max(fcy-2.0, 2) // vertical radius in rows

	// Ring
	steps := 80
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			grid[row][col] = lineChar(a + math.Pi/2)
		}
	}
	// One tick per bucket
	for b := 0; b < orientation.BucketCount; b++ {
		a := bucketAngle(b)
		setGrid(grid, width, height, int(math.Round(fcx+rx*math.Sin(a))), int(math.Round(fcy-ry*math.Cos(a))), '.')
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))
	setGrid(grid, width, height, cx, cy-int(math.Round(ry))-1, 'B')
	setGrid(grid, width, height, cx, cy, '+')

	angle := bucketAngle(current.Yaw - baseline.Yaw)

	// Lowered arm (pitch below baseline) draws a longer needle.
	frac := 0.55 - 0.05*float64(current.Pitch-baseline.Pitch)
	frac = math.Max(0.25, math.Min(0.9, frac))

	sinA, cosA := math.Sin(angle), math.Cos(angle)
	shaftSteps := int(math.Max(rx, ry) * frac)
	if shaftSteps < 2 {
		shaftSteps = 2
	}
	tipCol, tipRow := cx, cy
	for s := 1; s <= shaftSteps; s++ {
		t := float64(s) / float64(shaftSteps) * frac
		col := int(math.Round(fcx + t*rx*sinA))
		row := int(math.Round(fcy - t*ry*cosA))
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = lineChar(angle)
			isNeedle[row][col] = true
			tipCol, tipRow = col, row
		}
	}
	grid[tipRow][tipCol] = needleTip(angle)
	isNeedle[tipRow][tipCol] = true

	needleSty := lipgloss.NewStyle().Foreground(ColorKey).Bold(true)
	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	tickSty := lipgloss.NewStyle().Foreground(ColorMidGreen)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case ch == 'B':
				sb.WriteString(StyleBaselineMark.Render(string(ch)))
			case ch == '+':
				sb.WriteString(StyleValue.Render(string(ch)))
			case isNeedle[row][col]:
				sb.WriteString(needleSty.Render(string(ch)))
			case ch == '.':
				sb.WriteString(tickSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// bucketAngle converts a bucket offset to a dial angle (0 = top, clockwise).
func bucketAngle(offset int) float64 {
	return float64(offset) * 2 * math.Pi / orientation.BucketCount
}

func setGrid(grid [][]byte, w, h, col, row int, ch byte) {
	if col >= 0 && col < w && row >= 0 && row < h {
		grid[row][col] = ch
	}
}

// sector returns which of 8 compass sectors a lies in.
func sector(a float64) int {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 8
}

// lineChar returns the line character for a given direction.
func lineChar(a float64) byte {
	switch sector(a) {
	case 0, 4:
		return '|'
	case 2, 6:
		return '-'
	case 1, 5:
		return '/'
	default:
		return '\\'
	}
}

func needleTip(a float64) byte {
	return "^/>\\v/<\\"[sector(a)]
}
