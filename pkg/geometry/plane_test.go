package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_Intersect_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial)

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	t1, t2, ok := plane.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if t1 != t2 {
		t.Errorf("Expected a repeated root, got %f and %f", t1, t2)
	}
	if math.Abs(t1-1) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", t1)
	}
}

func TestPlane_Intersect_ParallelRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))

	if t1, _, ok := plane.Intersect(ray); ok {
		t.Errorf("Expected miss for parallel ray, but got hit at t=%f", t1)
	}
}

func TestPlane_Intersect_BehindRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	t1, _, ok := plane.Intersect(ray)
	if !ok {
		t.Fatal("Expected a root behind the origin")
	}
	if t1 >= 0 {
		t.Errorf("Expected negative t, got %f", t1)
	}

	// ClosestHit rejects it
	if _, hit := core.ClosestHit(ray, []core.Primitive{plane}, core.Epsilon, core.Infinity); hit {
		t.Error("Expected no nearest hit for a plane behind the ray")
	}
}

func TestPlane_NormalAt(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 5, 0), testMaterial)
	n := plane.NormalAt(core.NewVec3(3, -1, 7))
	if n != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normalized normal (0, 1, 0), got %v", n)
	}
}
