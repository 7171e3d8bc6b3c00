package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var testMaterial = core.Material{Color: core.NewVec3(255, 0, 0), Specular: 500, Reflective: 0.2}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if t1, t2, ok := sphere.Intersect(ray); ok {
		t.Errorf("Expected miss, but got roots %f, %f", t1, t2)
	}
}

func TestSphere_Intersect_SymmetricRoots(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		radius    float64
		direction core.Vec3
	}{
		{"unit direction", 5, 1, core.NewVec3(0, 0, 1)},
		{"long direction", 5, 1, core.NewVec3(0, 0, 4)},
		{"short direction", 10, 3, core.NewVec3(0, 0, 0.25)},
		{"large sphere", 100, 40, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, tt.distance), tt.radius, testMaterial)
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)

			t1, t2, ok := sphere.Intersect(ray)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}

			// Convert to distances so the check is independent of direction length
			scale := tt.direction.Length()
			d1, d2 := t1*scale, t2*scale

			const tolerance = 1e-9
			if math.Abs((d1+d2)/2-tt.distance) > tolerance {
				t.Errorf("Expected roots centered on %f, got %f and %f", tt.distance, d1, d2)
			}
			if math.Abs(math.Abs(d2-d1)-2*tt.radius) > tolerance {
				t.Errorf("Expected root separation %f, got %f", 2*tt.radius, math.Abs(d2-d1))
			}
		})
	}
}

func TestSphere_Intersect_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	t1, t2, ok := sphere.Intersect(ray)
	if !ok {
		t.Fatal("Expected glancing hit, but got miss")
	}
	if t1 != t2 {
		t.Errorf("Expected equal roots for tangent ray, got %f and %f", t1, t2)
	}
	if p := ray.At(t1); p.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Expected tangent point (1, 0, 0), got %v", p)
	}
}

func TestSphere_Intersect_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	t1, t2, ok := sphere.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit from inside")
	}
	if math.Abs(t1+2) > 1e-9 || math.Abs(t2-2) > 1e-9 {
		t.Errorf("Expected roots -2 and 2, got %f and %f", t1, t2)
	}
}

func TestSphere_NormalAt(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 1, 1), 2.0, testMaterial)

	tests := []struct {
		point    core.Vec3
		expected core.Vec3
	}{
		{core.NewVec3(3, 1, 1), core.NewVec3(1, 0, 0)},
		{core.NewVec3(1, -1, 1), core.NewVec3(0, -1, 0)},
		{core.NewVec3(1, 1, 3), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		n := sphere.NormalAt(tt.point)
		if n.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("NormalAt(%v): expected %v, got %v", tt.point, tt.expected, n)
		}
	}
}

func TestSphere_GetMaterial(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	if sphere.GetMaterial() != testMaterial {
		t.Errorf("Expected %v, got %v", testMaterial, sphere.GetMaterial())
	}
}

func TestSphere_ClosestHitAcrossOverlappingSpheres(t *testing.T) {
	primitives := []core.Primitive{
		NewSphere(core.NewVec3(0, 0, 10), 1, testMaterial),
		NewSphere(core.NewVec3(0, 0, 6), 2, testMaterial),
		NewSphere(core.NewVec3(0, 0, 7), 2, testMaterial),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, ok := core.ClosestHit(ray, primitives, core.Epsilon, core.Infinity)
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.Index != 1 || math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected sphere 1 at t=4, got sphere %d at t=%f", hit.Index, hit.T)
	}
}
