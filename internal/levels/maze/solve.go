package maze

import "github.com/vovakirdan/tui-quest/internal/core"

// Solve finds a sequence of movement samples that leads from the center
// of the start marker to the goal without any sample colliding. Samples
// lie on a grid of the given step inside the arena and consecutive
// samples are one step apart. It returns nil when no path exists.
func Solve(l Layout, step float64) []core.Point {
	if step <= 0 {
		step = 1
	}
	cols := int(l.Arena.W / step)
	rows := int(l.Arena.H / step)
	if cols <= 0 || rows <= 0 {
		return nil
	}

	at := func(c, r int) core.Point {
		return core.Pt(l.Arena.X+(float64(c)+0.5)*step, l.Arena.Y+(float64(r)+0.5)*step)
	}

	start := l.Start.Center()
	sc := core.Clamp(int((start.X-l.Arena.X)/step), 0, cols-1)
	sr := core.Clamp(int((start.Y-l.Arena.Y)/step), 0, rows-1)
	if l.Collides(at(sc, sr)) {
		return nil
	}

	prev := make([]int, cols*rows)
	for i := range prev {
		prev[i] = -1
	}
	startIdx := sr*cols + sc
	prev[startIdx] = startIdx
	queue := []int{startIdx}
	goal := -1

	dirs := [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for len(queue) > 0 && goal < 0 {
		cur := queue[0]
		queue = queue[1:]
		c, r := cur%cols, cur/cols
		if l.Reached(at(c, r)) {
			goal = cur
			break
		}
		for _, d := range dirs {
			nc, nr := c+d[0], r+d[1]
			if nc < 0 || nr < 0 || nc >= cols || nr >= rows {
				continue
			}
			idx := nr*cols + nc
			if prev[idx] >= 0 || l.Collides(at(nc, nr)) {
				continue
			}
			prev[idx] = cur
			queue = append(queue, idx)
		}
	}
	if goal < 0 {
		return nil
	}

	var rev []core.Point
	for idx := goal; ; idx = prev[idx] {
		rev = append(rev, at(idx%cols, idx/cols))
		if idx == startIdx {
			break
		}
	}
	path := make([]core.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
