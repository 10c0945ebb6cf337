package route

import (
	"testing"

	"github.com/matzehuels/topolayout/pkg/geom"
)

func TestSmooth(t *testing.T) {
	tests := []struct {
		name string
		in   geom.Path
		want geom.Path
	}{
		{
			name: "two points untouched",
			in:   geom.Path{pos(0, 0), pos(10, 0)},
			want: geom.Path{pos(0, 0), pos(10, 0)},
		},
		{
			name: "horizontal run",
			in:   geom.Path{pos(0, 0), pos(10, 0), pos(20, 0), pos(30, 0)},
			want: geom.Path{pos(0, 0), pos(30, 0)},
		},
		{
			name: "one corner",
			in:   geom.Path{pos(0, 0), pos(10, 0), pos(20, 0), pos(20, 10), pos(20, 20)},
			want: geom.Path{pos(0, 0), pos(20, 0), pos(20, 20)},
		},
		{
			name: "duplicates removed",
			in:   geom.Path{pos(0, 0), pos(0, 0), pos(5, 5), pos(5, 5), pos(10, 10)},
			want: geom.Path{pos(0, 0), pos(10, 10)},
		},
		{
			name: "u-turn keeps corner",
			in:   geom.Path{pos(0, 0), pos(10, 0), pos(5, 0)},
			want: geom.Path{pos(0, 0), pos(10, 0), pos(5, 0)},
		},
		{
			name: "staircase keeps every step",
			in:   geom.Path{pos(0, 0), pos(10, 0), pos(10, 10), pos(20, 10)},
			want: geom.Path{pos(0, 0), pos(10, 0), pos(10, 10), pos(20, 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Smooth(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Smooth() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSmoothDoesNotMutateInput(t *testing.T) {
	in := geom.Path{pos(0, 0), pos(10, 0), pos(20, 0)}
	Smooth(in)
	if len(in) != 3 || in[1] != pos(10, 0) {
		t.Errorf("input modified: %v", in)
	}
}
