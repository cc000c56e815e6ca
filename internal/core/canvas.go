package core

import "math"

// Character-cell pixel geometry used by the platform. Terminal cells are
// roughly twice as tall as they are wide.
const (
	DefaultCellW = 8.0
	DefaultCellH = 16.0
)

// affine is a 2D transform: x' = a*x + c*y + e, y' = b*x + d*y + f.
type affine struct {
	a, b, c, d, e, f float64
}

var identity = affine{a: 1, d: 1}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func (m affine) invert(x, y float64) (float64, float64, bool) {
	det := m.a*m.d - m.b*m.c
	if det == 0 {
		return 0, 0, false
	}
	x -= m.e
	y -= m.f
	return (m.d*x - m.c*y) / det, (-m.b*x + m.a*y) / det, true
}

// Canvas is a pixel-addressed 2D drawing context rasterized onto a Screen.
// It supports the small subset of a canvas API the celebration needs:
// clearing, a save/restore transform stack, translation, rotation and
// filled rectangles.
type Canvas struct {
	screen *Screen
	cellW  float64
	cellH  float64
	m      affine
	stack  []affine
}

// NewCanvas wraps a screen. cellW and cellH give the pixel size of one cell.
func NewCanvas(s *Screen, cellW, cellH float64) *Canvas {
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	return &Canvas{screen: s, cellW: cellW, cellH: cellH, m: identity}
}

// Width returns the canvas width in pixels.
func (cv *Canvas) Width() float64 {
	return float64(cv.screen.Width()) * cv.cellW
}

// Height returns the canvas height in pixels.
func (cv *Canvas) Height() float64 {
	return float64(cv.screen.Height()) * cv.cellH
}

// Clear blanks the underlying screen. The transform is left untouched.
func (cv *Canvas) Clear() {
	cv.screen.Clear()
}

// Save pushes the current transform.
func (cv *Canvas) Save() {
	cv.stack = append(cv.stack, cv.m)
}

// Restore pops the most recently saved transform. Restoring with an empty
// stack resets to identity.
func (cv *Canvas) Restore() {
	if len(cv.stack) == 0 {
		cv.m = identity
		return
	}
	cv.m = cv.stack[len(cv.stack)-1]
	cv.stack = cv.stack[:len(cv.stack)-1]
}

// Translate moves the origin by (x, y) in the current coordinate system.
func (cv *Canvas) Translate(x, y float64) {
	cv.m.e += cv.m.a*x + cv.m.c*y
	cv.m.f += cv.m.b*x + cv.m.d*y
}

// Rotate rotates the coordinate system clockwise by rad radians.
func (cv *Canvas) Rotate(rad float64) {
	sin, cos := math.Sincos(rad)
	m := cv.m
	cv.m.a = m.a*cos + m.c*sin
	cv.m.b = m.b*cos + m.d*sin
	cv.m.c = m.c*cos - m.a*sin
	cv.m.d = m.d*cos - m.b*sin
}

// FillRect fills the rectangle (x, y, w, h) given in the current
// coordinate system. A cell is filled when its center falls inside the
// transformed rectangle; a rectangle smaller than one cell marks the cell
// under its center with a glyph hinting at its rotation.
func (cv *Canvas) FillRect(x, y, w, h float64, c Color) {
	corners := [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		px, py := cv.m.apply(p[0], p[1])
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}

	filled := 0
	for row := floor(minY / cv.cellH); row <= floor(maxY/cv.cellH); row++ {
		for col := floor(minX / cv.cellW); col <= floor(maxX/cv.cellW); col++ {
			cx := (float64(col) + 0.5) * cv.cellW
			cy := (float64(row) + 0.5) * cv.cellH
			u, v, ok := cv.m.invert(cx, cy)
			if !ok {
				continue
			}
			if u >= x && u <= x+w && v >= y && v <= y+h {
				cv.screen.SetCell(col, row, '█', c)
				filled++
			}
		}
	}
	if filled > 0 {
		return
	}

	px, py := cv.m.apply(x+w/2, y+h/2)
	cv.screen.SetCell(floor(px/cv.cellW), floor(py/cv.cellH), cv.glyph(), c)
}

// glyph picks a small-particle rune from the current rotation.
func (cv *Canvas) glyph() rune {
	deg := math.Mod(math.Atan2(cv.m.b, cv.m.a)*180/math.Pi, 90)
	if deg < 0 {
		deg += 90
	}
	if deg >= 22.5 && deg < 67.5 {
		return '◆'
	}
	return '■'
}
