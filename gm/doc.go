// Package gm contains the small amount of 2d geometry the engine needs.
//
// Vec is a 2d vector of float64 values, Rect an axis aligned rectangle in the same
// coordinate space. Mat and Affine describe linear and affine transforms. Angles are
// given in radians using the Rad type.
package gm
