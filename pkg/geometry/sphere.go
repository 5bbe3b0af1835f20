package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, s.Center, s.Radius, s.Material)
}

// Validate rejects spheres that cannot be rendered
func (s *Sphere) Validate() error {
	return validateSphere(s.Center, s.Radius, s.Material)
}

// hitSphere solves |origin + t*direction - center|² = radius² for the nearest root in (tMin, tMax)
func hitSphere(ray core.Ray, tMin, tMax float64, center core.Vec3, radius float64, mat material.Material) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c

	// Tangent rays count as misses
	if discriminant <= 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: mat,
	}

	// Dividing by the radius yields a unit outward normal
	outwardNormal := hitRecord.Point.Subtract(center).Multiply(1.0 / radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

func validateSphere(center core.Vec3, radius float64, mat material.Material) error {
	var errs []error
	if !(radius > 0) || math.IsInf(radius, 0) {
		errs = append(errs, fmt.Errorf("sphere radius must be positive, got %v", radius))
	}
	if !center.IsFinite() {
		errs = append(errs, fmt.Errorf("sphere center %v is not finite", center))
	}
	if mat == nil {
		errs = append(errs, errors.New("sphere has no material"))
	} else if err := mat.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
