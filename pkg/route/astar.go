package route

import (
	"container/heap"
	"math"

	"github.com/matzehuels/topolayout/pkg/geom"
)

const (
	// gridMargin extends the search area beyond the anchors' bounding box
	// on every side so routes can swing around obstacles near the ends.
	gridMargin = 100.0

	// maxGridCells bounds memory for a single search. Larger grids fall back
	// to the direct path.
	maxGridCells = 4_000_000
)

// grid is a row-major occupancy grid anchored at (originX, originY).
type grid struct {
	originX, originY float64
	size             float64
	cols, rows       int
	blocked          []bool
}

func newGrid(source, target geom.Position, size float64) (*grid, bool) {
	minX := math.Min(source.X, target.X) - gridMargin
	minY := math.Min(source.Y, target.Y) - gridMargin
	maxX := math.Max(source.X, target.X) + gridMargin
	maxY := math.Max(source.Y, target.Y) + gridMargin

	colsF := math.Ceil((maxX - minX) / size)
	rowsF := math.Ceil((maxY - minY) / size)
	if !isFinite(colsF) || !isFinite(rowsF) || colsF*rowsF > maxGridCells {
		return nil, false
	}
	cols, rows := max(int(colsF), 1), max(int(rowsF), 1)
	return &grid{
		originX: minX,
		originY: minY,
		size:    size,
		cols:    cols,
		rows:    rows,
		blocked: make([]bool, cols*rows),
	}, true
}

// cellOf returns the index of the cell containing p, clamped to the grid.
func (g *grid) cellOf(p geom.Position) int {
	col := clamp(int(math.Floor((p.X-g.originX)/g.size)), 0, g.cols-1)
	row := clamp(int(math.Floor((p.Y-g.originY)/g.size)), 0, g.rows-1)
	return row*g.cols + col
}

// center returns the midpoint of a cell.
func (g *grid) center(cell int) geom.Position {
	col, row := cell%g.cols, cell/g.cols
	return geom.Position{
		X: g.originX + (float64(col)+0.5)*g.size,
		Y: g.originY + (float64(row)+0.5)*g.size,
	}
}

// block marks every cell overlapping r expanded by one cell on each side.
func (g *grid) block(r geom.Rectangle) {
	if !isFinite(r.X) || !isFinite(r.Y) || !isFinite(r.Width) || !isFinite(r.Height) {
		return
	}
	e := r.Inflate(g.size)
	c0 := clamp(int(math.Floor((e.X-g.originX)/g.size)), 0, g.cols)
	c1 := clamp(int(math.Ceil((e.Right()-g.originX)/g.size)), 0, g.cols)
	r0 := clamp(int(math.Floor((e.Y-g.originY)/g.size)), 0, g.rows)
	r1 := clamp(int(math.Ceil((e.Bottom()-g.originY)/g.size)), 0, g.rows)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			g.blocked[row*g.cols+col] = true
		}
	}
}

// manhattan is the admissible heuristic for unit-cost 4-way moves.
func (g *grid) manhattan(a, b int) int {
	dc := a%g.cols - b%g.cols
	dr := a/g.cols - b/g.cols
	return abs(dc) + abs(dr)
}

// neighbors appends the in-bounds, unblocked 4-neighbours of cell in the
// fixed order up, right, down, left.
func (g *grid) neighbors(cell int, buf []int) []int {
	buf = buf[:0]
	col, row := cell%g.cols, cell/g.cols
	if row > 0 && !g.blocked[cell-g.cols] {
		buf = append(buf, cell-g.cols)
	}
	if col < g.cols-1 && !g.blocked[cell+1] {
		buf = append(buf, cell+1)
	}
	if row < g.rows-1 && !g.blocked[cell+g.cols] {
		buf = append(buf, cell+g.cols)
	}
	if col > 0 && !g.blocked[cell-1] {
		buf = append(buf, cell-1)
	}
	return buf
}

// searchGrid runs A* from the source cell to the target cell and returns the
// simplified waypoint path. ok is false when no route exists or the grid
// would be too large.
func searchGrid(source, target geom.Position, obstacles []geom.Rectangle, opts Options) (geom.Path, bool) {
	g, ok := newGrid(source, target, opts.GridSize)
	if !ok {
		return nil, false
	}
	if opts.AvoidObstacles {
		for _, r := range obstacles {
			g.block(r)
		}
	}

	start, goal := g.cellOf(source), g.cellOf(target)
	g.blocked[start] = false
	g.blocked[goal] = false

	cells := g.astar(start, goal)
	if cells == nil {
		return nil, false
	}

	path := make(geom.Path, len(cells))
	for i, cell := range cells {
		path[i] = g.center(cell)
	}
	path[0] = source
	if len(path) == 1 {
		path = append(path, target)
	} else {
		path[len(path)-1] = target
	}
	return Smooth(path), true
}

// astar returns the cells from start to goal inclusive, or nil.
func (g *grid) astar(start, goal int) []int {
	n := g.cols * g.rows
	cost := make([]int, n)
	parent := make([]int32, n)
	closed := make([]bool, n)
	for i := range cost {
		cost[i] = math.MaxInt
		parent[i] = -1
	}

	pq := &frontier{}
	var seq uint64
	cost[start] = 0
	heap.Push(pq, frontierItem{cell: start, f: g.manhattan(start, goal), seq: seq})

	buf := make([]int, 0, 4)
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierItem)
		if closed[cur.cell] {
			continue
		}
		closed[cur.cell] = true

		if cur.cell == goal {
			return g.trace(parent, goal)
		}

		for _, next := range g.neighbors(cur.cell, buf) {
			if closed[next] {
				continue
			}
			c := cost[cur.cell] + 1
			if c >= cost[next] {
				continue
			}
			cost[next] = c
			parent[next] = int32(cur.cell)
			seq++
			heap.Push(pq, frontierItem{cell: next, f: c + g.manhattan(next, goal), seq: seq})
		}
	}
	return nil
}

func (g *grid) trace(parent []int32, goal int) []int {
	var cells []int
	for cur := goal; cur >= 0; cur = int(parent[cur]) {
		cells = append(cells, cur)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// =============================================================================
// Frontier
// =============================================================================

type frontierItem struct {
	cell int
	f    int
	seq  uint64
}

// frontier is a min-heap ordered by f-cost, then by insertion sequence so
// equal-cost entries leave in FIFO order.
type frontier []frontierItem

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq frontier) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *frontier) Push(x any) {
	*pq = append(*pq, x.(frontierItem))
}

func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
