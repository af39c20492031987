package maze

// Solve returns the shortest open path from -> to, both ends included, or nil
// when either end is blocked or no path exists.
func (g *Grid) Solve(from, to Point) []Point {
	if !g.Open(from) || !g.Open(to) {
		return nil
	}
	prev := make(map[Point]Point, g.OpenCount())
	prev[from] = from
	queue := []Point{from}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == to {
			break
		}
		for _, d := range [4]Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
			next := curr.Add(d.X, d.Y)
			if !g.Open(next) {
				continue
			}
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = curr
			queue = append(queue, next)
		}
	}

	if _, reached := prev[to]; !reached {
		return nil
	}
	path := []Point{to}
	for p := to; p != from; {
		p = prev[p]
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
