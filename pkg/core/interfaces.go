package core

// Material is carried through an Intersection so shading can evaluate it.
// The acceleration structures never call it.
type Material interface {
	// BRDF returns the reflectance for light arriving along incoming and
	// leaving along outgoing (both pointing away from the surface).
	BRDF(incoming, outgoing Vec3) Vec3
}

// Object is a geometric shape defined in its own object space
type Object interface {
	// Intersect returns the nearest hit with t > 0
	Intersect(ray Ray) (Intersection, bool)
	// BoundingBox returns the box of the object after applying transform
	BoundingBox(transform Transform) AABB
	Material() Material
}
