// Package geom provides the value types used to describe layout geometry:
// points, sizes, edge insets and rectangles.
//
// All coordinates are float64 in user units with the origin at the top-left
// corner and Y growing downward. Rectangles are value types; every operation
// returns a new value and never mutates its receiver.
//
// # Null Rectangles
//
// [Null] is the identity element for [Rect.Union]: unioning anything with it
// returns the other operand unchanged. It is distinct from a zero-area
// rectangle, which still occupies a position and extends a union:
//
//	r := geom.Null
//	r = r.Union(geom.R(0, 0, 10, 10))  // (0,0,10,10)
//	r = r.Union(geom.R(20, 20, 0, 0))  // (0,0,20,20)
package geom
