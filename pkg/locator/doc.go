// Package locator classifies points in space as inside or outside the volume
// enclosed by a closed polygon mesh. Classification counts the crossings of
// a short ray cast from the query point toward the nearest face of the
// mesh's bounding box; an odd count means the point is enclosed.
//
// The mesh must be watertight and free of self-intersections. Points lying
// exactly on the surface may be reported either way.
package locator
