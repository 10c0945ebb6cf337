package hierarchical

import (
	"maps"

	"github.com/matzehuels/topolayout/pkg/route"
	"github.com/matzehuels/topolayout/pkg/validation"
)

// Direction is the stacking direction of layers.
type Direction string

const (
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
)

// horizontal reports whether layers are stacked along the x axis.
func (d Direction) horizontal() bool { return d == LeftToRight || d == RightToLeft }

// reversed reports whether the highest layer index is placed first.
func (d Direction) reversed() bool { return d == BottomToTop || d == RightToLeft }

// Options configures a hierarchical layout.
type Options struct {
	Direction     Direction `json:"direction" toml:"direction" yaml:"direction" validate:"oneof=TB BT LR RL"`
	LayerDistance float64   `json:"layer_distance" toml:"layer_distance" yaml:"layer_distance" validate:"gt=0"`
	NodeDistance  float64   `json:"node_distance" toml:"node_distance" yaml:"node_distance" validate:"gte=0"`
	Padding       float64   `json:"padding" toml:"padding" yaml:"padding" validate:"gte=0"`

	ImproveRanking    bool `json:"improve_ranking" toml:"improve_ranking" yaml:"improve_ranking"`
	MinimizeCrossings bool `json:"minimize_crossings" toml:"minimize_crossings" yaml:"minimize_crossings"`

	// KeepEmptyLayers makes unoccupied layer indices between occupied ones
	// still take a LayerDistance gap.
	KeepEmptyLayers bool `json:"keep_empty_layers" toml:"keep_empty_layers" yaml:"keep_empty_layers"`

	// DefaultLayer is used for untyped nodes without a typed ancestor.
	DefaultLayer int `json:"default_layer" toml:"default_layer" yaml:"default_layer" validate:"gte=0"`

	// LayerTable maps node types to layers.
	LayerTable map[string]int `json:"layer_table" toml:"layer_table" yaml:"layer_table" validate:"dive,gte=0"`

	Routing route.Options `json:"routing" toml:"routing" yaml:"routing"`
}

// DefaultLayerTable returns the standard type-to-layer mapping, including the
// domainController and ecu aliases.
func DefaultLayerTable() map[string]int {
	return map[string]int{
		"controller":       0,
		"domainController": 0,
		"gateway":          1,
		"unit":             2,
		"ecu":              2,
		"sensor":           3,
		"actuator":         3,
		"bus":              4,
	}
}

// DefaultOptions returns top-to-bottom layers 100 apart, nodes 50 apart,
// 50 padding, refinement and crossing reduction on, and orthogonal routing.
func DefaultOptions() Options {
	routing := route.DefaultOptions()
	routing.Algorithm = route.Orthogonal
	return Options{
		Direction:         TopToBottom,
		LayerDistance:     100,
		NodeDistance:      50,
		Padding:           50,
		ImproveRanking:    true,
		MinimizeCrossings: true,
		DefaultLayer:      2,
		LayerTable:        DefaultLayerTable(),
		Routing:           routing,
	}
}

// Validate reports the first invalid field as an INVALID_CONFIG error.
func (o Options) Validate() error {
	return validation.Struct("hierarchical", o)
}

func (o Options) clone() Options {
	o.LayerTable = maps.Clone(o.LayerTable)
	return o
}
