package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Lerp midpoint", NewVec3(0, 0, 0).Lerp(NewVec3(2, 4, 6), 0.5), NewVec3(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if a.Dot(b) != 4-10+18 {
		t.Errorf("Expected dot 12, got %f", a.Dot(b))
	}
	if a.LengthSquared() != 14 {
		t.Errorf("Expected squared length 14, got %f", a.LengthSquared())
	}
	if math.Abs(a.Length()-math.Sqrt(14)) > 1e-12 {
		t.Errorf("Expected length sqrt(14), got %f", a.Length())
	}
}

func TestVec3_ValueSemantics(t *testing.T) {
	a := NewVec3(1, 1, 1)
	b := a.Add(NewVec3(1, 0, 0))
	b.X = 10
	if a.X != 1 {
		t.Errorf("Operations must not alias the receiver, got %v", a)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 12).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"exact zero", NewVec3(0, 0, 0), true},
		{"tiny components", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component too big", NewVec3(1e-9, 1e-7, 0), false},
		{"unit vector", NewVec3(0, 1, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.NearZero() != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, !tt.expected, tt.expected)
			}
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	reflected := v.Reflect(n)
	if !vecNear(reflected, NewVec3(1, 1, 0), 1e-12) {
		t.Errorf("Expected (1,1,0), got %v", reflected)
	}
}

func TestVec3_Refract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		refracted, ok := NewVec3(0, -1, 0).Refract(n, 1.0/1.5)
		if !ok {
			t.Fatal("Expected refraction at normal incidence")
		}
		if !vecNear(refracted.Normalize(), NewVec3(0, -1, 0), 1e-12) {
			t.Errorf("Expected straight transmission, got %v", refracted)
		}
	})

	t.Run("obeys Snell's law", func(t *testing.T) {
		ratio := 1.0 / 1.5
		incident := NewVec3(1, -1, 0).Normalize()
		refracted, ok := incident.Refract(n, ratio)
		if !ok {
			t.Fatal("Expected refraction entering denser medium")
		}
		sinIn := math.Abs(incident.X)
		sinOut := math.Abs(refracted.Normalize().X)
		if math.Abs(sinIn*ratio-sinOut) > 1e-9 {
			t.Errorf("Snell's law violated: sinIn*ratio=%f sinOut=%f", sinIn*ratio, sinOut)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		// Leaving glass at a grazing angle cannot refract
		_, ok := NewVec3(1, -0.1, 0).Refract(n, 1.5)
		if ok {
			t.Error("Expected total internal reflection")
		}
	})
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-1, 0.5, 2).Clamp(0, 0.999)
	if !vecNear(v, NewVec3(0, 0.5, 0.999), 1e-12) {
		t.Errorf("Unexpected clamp result %v", v)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN to be reported")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Expected Inf to be reported")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 0, 0), NewVec3(0, 2, 0), 0.25)
	p := ray.At(1.5)
	if !vecNear(p, NewVec3(1, 3, 0), 1e-12) {
		t.Errorf("Expected (1,3,0), got %v", p)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
	if !vecNear(ray.At(-1), NewVec3(1, -2, 0), 1e-12) {
		t.Errorf("Negative t should evaluate behind the origin, got %v", ray.At(-1))
	}
}
