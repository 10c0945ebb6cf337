// Package geom provides the plane geometry value types shared by the layout
// strategies and the edge router.
//
// All coordinates are in user units (typically pixels on the rendering
// surface) with the origin at the top-left and y growing downward.
//
// # Types
//
//   - [Position]: a point
//   - [Rectangle]: an axis-aligned box given by its top-left corner and size
//   - [Path]: an ordered polyline from a source anchor to a target anchor
//
// The types carry no state beyond their fields and are safe to copy.
package geom
