package core

// Ray represents a ray with an origin and direction.
// The direction need not be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Hit is the nearest intersection found along a ray
type Hit struct {
	T         float64   // Parametric distance along the ray
	Point     Vec3      // World-space intersection point
	Primitive Primitive // Copy of the intersected primitive
	Index     int       // Position of the primitive in the scanned slice
}

// inRange reports whether t lies strictly inside (tMin, tMax)
func inRange(t, tMin, tMax float64) bool {
	return tMin < t && t < tMax
}

// ClosestHit scans primitives in order and returns the nearest intersection
// with tMin < t < tMax. Each primitive contributes both of its roots; a later
// primitive only wins with a strictly smaller t, so ties go to the earliest one.
func ClosestHit(ray Ray, primitives []Primitive, tMin, tMax float64) (Hit, bool) {
	closestT := tMax
	closestIndex := -1

	for i, primitive := range primitives {
		t1, t2, ok := primitive.Intersect(ray)
		if !ok {
			continue
		}

		if inRange(t1, tMin, tMax) && t1 < closestT {
			closestT = t1
			closestIndex = i
		}

		if t1 != t2 && inRange(t2, tMin, tMax) && t2 < closestT {
			closestT = t2
			closestIndex = i
		}
	}

	if closestIndex < 0 {
		return Hit{}, false
	}

	return Hit{
		T:         closestT,
		Point:     ray.At(closestT),
		Primitive: primitives[closestIndex],
		Index:     closestIndex,
	}, true
}
