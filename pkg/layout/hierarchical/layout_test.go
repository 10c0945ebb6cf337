package hierarchical

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/geom"
	"github.com/matzehuels/topolayout/pkg/layout"
	"github.com/matzehuels/topolayout/pkg/route"
)

func execute(t *testing.T, opts Options, nodes []layout.Node, edges []layout.Edge) layout.Result {
	t.Helper()
	res, err := New(WithOptions(opts)).Execute(context.Background(), nodes, edges)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	return res
}

func mustPosition(t *testing.T, res layout.Result, id string) layout.NodePosition {
	t.Helper()
	p, ok := res.Position(id)
	if !ok {
		t.Fatalf("no position for %q", id)
	}
	return p
}

func TestExecuteLayerSpacing(t *testing.T) {
	nodes := []layout.Node{node("c", "controller"), node("b", "bus")}

	tests := []struct {
		name      string
		keepEmpty bool
		wantDiff  float64
	}{
		// Compact: one band depth plus one gap.
		{"empty layers skipped", false, 50 + 100},
		// Bands 1 to 3 are empty but each still adds a gap.
		{"empty layers kept", true, 50 + 4*100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.KeepEmptyLayers = tt.keepEmpty
			res := execute(t, opts, nodes, nil)

			c, b := mustPosition(t, res, "c"), mustPosition(t, res, "b")
			if c.Y != 50 {
				t.Errorf("controller Y = %v, want padding 50", c.Y)
			}
			if diff := b.Y - c.Y; diff != tt.wantDiff {
				t.Errorf("bus-controller Y diff = %v, want %v", diff, tt.wantDiff)
			}
		})
	}

	opts := DefaultOptions()
	opts.KeepEmptyLayers = true
	res := execute(t, opts, nodes, nil)
	if diff := mustPosition(t, res, "b").Y - mustPosition(t, res, "c").Y; diff < 4*opts.LayerDistance {
		t.Errorf("with kept layers diff = %v, want >= %v", diff, 4*opts.LayerDistance)
	}
}

func TestExecuteCentersLayers(t *testing.T) {
	nodes := []layout.Node{
		node("c", "controller"),
		node("b1", "bus"),
		node("b2", "bus"),
	}
	opts := DefaultOptions()
	opts.MinimizeCrossings = false
	res := execute(t, opts, nodes, nil)

	// Widest layer: 100 + 50 + 100 = 250.
	if x := mustPosition(t, res, "c").X; x != 50+(250-100)/2 {
		t.Errorf("controller X = %v, want %v", x, 50+(250-100)/2)
	}
	if x := mustPosition(t, res, "b1").X; x != 50 {
		t.Errorf("b1 X = %v, want 50", x)
	}
	if x := mustPosition(t, res, "b2").X; x != 200 {
		t.Errorf("b2 X = %v, want 200", x)
	}
}

func TestExecuteCentersInBand(t *testing.T) {
	nodes := []layout.Node{
		{ID: "s", Type: "sensor", Width: 40, Height: 30},
		{ID: "a", Type: "actuator", Width: 40, Height: 50},
	}
	res := execute(t, DefaultOptions(), nodes, nil)
	s, a := mustPosition(t, res, "s"), mustPosition(t, res, "a")
	if s.Y-a.Y != 10 {
		t.Errorf("sensor offset = %v, want 10 (centered in a 50-deep band)", s.Y-a.Y)
	}
}

func TestExecuteDirections(t *testing.T) {
	nodes := []layout.Node{node("c", "controller"), node("b", "bus")}

	tests := []struct {
		dir   Direction
		check func(c, b layout.NodePosition) bool
	}{
		{TopToBottom, func(c, b layout.NodePosition) bool { return c.Y < b.Y && c.X == b.X }},
		{BottomToTop, func(c, b layout.NodePosition) bool { return c.Y > b.Y && c.X == b.X }},
		{LeftToRight, func(c, b layout.NodePosition) bool { return c.X < b.X && c.Y == b.Y }},
		{RightToLeft, func(c, b layout.NodePosition) bool { return c.X > b.X && c.Y == b.Y }},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Direction = tt.dir
			res := execute(t, opts, nodes, nil)
			c, b := mustPosition(t, res, "c"), mustPosition(t, res, "b")
			if !tt.check(c, b) {
				t.Errorf("controller %+v, bus %+v do not match direction %s", c, b, tt.dir)
			}
		})
	}

	// LR stacks along x using node widths.
	opts := DefaultOptions()
	opts.Direction = LeftToRight
	res := execute(t, opts, nodes, nil)
	if x := mustPosition(t, res, "b").X; x != 50+100+100 {
		t.Errorf("LR bus X = %v, want 250", x)
	}
}

func TestExecuteMinimizeCrossings(t *testing.T) {
	nodes := []layout.Node{
		node("c", "controller"),
		node("s1", "sensor"),
		node("s2", "sensor"),
		node("s3", "sensor"),
		node("b", "bus"),
	}
	edges := []layout.Edge{
		edge("e1", "s3", "b"),
		edge("e2", "c", "s3"),
		edge("e3", "s2", "b"),
	}

	opts := DefaultOptions()
	res := execute(t, opts, nodes, edges)
	x1 := mustPosition(t, res, "s1").X
	x2 := mustPosition(t, res, "s2").X
	x3 := mustPosition(t, res, "s3").X
	// Degrees s3=2, s2=1, s1=0.
	if !(x3 < x2 && x2 < x1) {
		t.Errorf("order by degree: s3=%v s2=%v s1=%v", x3, x2, x1)
	}

	opts.MinimizeCrossings = false
	res = execute(t, opts, nodes, edges)
	if !(mustPosition(t, res, "s1").X < mustPosition(t, res, "s2").X) {
		t.Error("without crossing reduction input order should be kept")
	}
}

func TestExecuteRoutesEdges(t *testing.T) {
	nodes := []layout.Node{node("c", "controller"), node("b", "bus"), node("g", "gateway")}
	edges := []layout.Edge{
		edge("e1", "c", "b"),
		edge("dangling", "c", "ghost"),
		edge("e2", "g", "b"),
	}
	res := execute(t, DefaultOptions(), nodes, edges)

	if len(res.EdgePaths) != 2 {
		t.Fatalf("edge paths = %d, want 2", len(res.EdgePaths))
	}
	if _, ok := res.Path("dangling"); ok {
		t.Error("dangling edge should be excluded")
	}

	p, _ := res.Path("e2")
	g, b := mustPosition(t, res, "g"), mustPosition(t, res, "b")
	src := geom.Position{X: g.X + 50, Y: g.Y + 25}
	dst := geom.Position{X: b.X + 50, Y: b.Y + 25}
	want := geom.Path{src, {X: src.X, Y: dst.Y}, dst}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("path = %v, want %v", p, want)
	}
}

func TestExecuteRoutingOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.Routing.Algorithm = route.Curved
	res := execute(t, opts, []layout.Node{node("c", "controller"), node("b", "bus")}, []layout.Edge{edge("e", "c", "b")})
	if p, _ := res.Path("e"); len(p) != route.DefaultCurveSegments+1 {
		t.Errorf("curved path has %d points", len(p))
	}
}

func TestExecuteIdempotentAndReadOnly(t *testing.T) {
	nodes := []layout.Node{
		node("c", "controller"), node("g", "gateway"), node("x", "camera"),
		node("s", "sensor"), node("b", "bus"),
	}
	edges := []layout.Edge{edge("e1", "c", "g"), edge("e2", "g", "x"), edge("e3", "x", "s"), edge("e4", "s", "b")}
	before := append([]layout.Node(nil), nodes...)

	l := New()
	r1, err := l.Execute(context.Background(), nodes, edges)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := l.Execute(context.Background(), nodes, edges)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Error("identical inputs produced different results")
	}
	if !reflect.DeepEqual(nodes, before) {
		t.Error("Execute modified its input nodes")
	}
	if len(r1.NodePositions) != len(nodes) {
		t.Errorf("positions = %d, want %d", len(r1.NodePositions), len(nodes))
	}
	for i, p := range r1.NodePositions {
		if p.ID != nodes[i].ID {
			t.Errorf("position %d id = %s, want input order %s", i, p.ID, nodes[i].ID)
		}
	}
}

func TestExecuteErrors(t *testing.T) {
	bad := DefaultOptions()
	bad.LayerDistance = 0
	_, err := New(WithOptions(bad)).Execute(context.Background(), []layout.Node{node("a", "bus")}, nil)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid options error = %v, want INVALID_CONFIG", err)
	}

	_, err = New().Execute(context.Background(), []layout.Node{{ID: "a"}}, nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid node error = %v, want INVALID_INPUT", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Execute(ctx, []layout.Node{node("a", "bus")}, nil)
	if !errors.Is(err, errors.ErrCodeCancelled) {
		t.Errorf("cancelled context error = %v, want CANCELLED", err)
	}
}

func TestExecuteEmpty(t *testing.T) {
	res := execute(t, DefaultOptions(), nil, nil)
	if len(res.NodePositions) != 0 || len(res.EdgePaths) != 0 {
		t.Errorf("empty input produced %+v", res)
	}
}

func TestRunningState(t *testing.T) {
	l := New()
	if l.IsRunning() {
		t.Error("new layout should not be running")
	}
	l.Stop() // no-op
	if _, err := l.Execute(context.Background(), []layout.Node{node("a", "bus")}, nil); err != nil {
		t.Errorf("Execute after idle Stop() error: %v", err)
	}
	if l.IsRunning() {
		t.Error("layout should not be running after Execute returns")
	}
}
