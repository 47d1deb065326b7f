package core

// Intersection describes a ray hit. It is a transient value that lives for
// the duration of shading.
type Intersection struct {
	T        float64  // Distance along the ray
	Point    Vec3     // Hit point
	Normal   Vec3     // Unit surface normal
	Material Material // Material of the surface that was hit
}

// Closest returns the nearer of two optional intersections. Ties keep the
// first one so folds over a fixed order are deterministic.
func Closest(a Intersection, aOk bool, b Intersection, bOk bool) (Intersection, bool) {
	switch {
	case !aOk:
		return b, bOk
	case !bOk:
		return a, true
	case b.T < a.T:
		return b, true
	default:
		return a, true
	}
}
