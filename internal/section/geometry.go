package section

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Point represents a 2D coordinate in inches
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Shape is a user-defined cross-section given by the vertices of a simple
// polygon (no holes), listed in either winding direction. The strong bending
// axis is horizontal.
type Shape struct {
	Name     string  `json:"name" yaml:"name"`
	Vertices []Point `json:"vertices" yaml:"vertices"`

	// J overrides the torsion constant; the polar moment Ix + Iy is used when zero
	J float64 `json:"j,omitempty" yaml:"j,omitempty"`
}

// Validate checks if the shape definition is usable
func (s *Shape) Validate() error {
	if Normalize(s.Name) == "" {
		return &ValidationError{"shape must have a name"}
	}
	if IsValid(s.Name) {
		return &ValidationError{fmt.Sprintf("shape name %q collides with a catalog section", s.Name)}
	}
	if len(s.Vertices) < 3 {
		return &ValidationError{"shape must have at least 3 vertices"}
	}
	for i, v := range s.Vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return &ValidationError{fmt.Sprintf("vertex %d is not finite", i+1)}
		}
	}
	if s.J < 0 {
		return &ValidationError{"torsion constant must not be negative"}
	}
	if a, _, _ := s.areaAndCentroid(); a <= 0 {
		return &ValidationError{"shape encloses no area"}
	}
	return nil
}

// areaAndCentroid uses the shoelace formula
func (s *Shape) areaAndCentroid() (area, cx, cy float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea, sumX, sumY float64
	for i := 0; i < n; i++ {
		p, q := s.Vertices[i], s.Vertices[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		signedArea += cross
		sumX += (p.X + q.X) * cross
		sumY += (p.Y + q.Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)
	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}
	return area, cx, cy
}

// secondMoments returns the centroidal moments of inertia about the
// horizontal (ix) and vertical (iy) axes
func (s *Shape) secondMoments() (ix, iy float64) {
	area, cx, cy := s.areaAndCentroid()
	if area == 0 {
		return 0, 0
	}

	var sxx, syy, signedArea float64
	n := len(s.Vertices)
	for i := 0; i < n; i++ {
		p, q := s.Vertices[i], s.Vertices[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		signedArea += cross
		sxx += (p.Y*p.Y + p.Y*q.Y + q.Y*q.Y) * cross
		syy += (p.X*p.X + p.X*q.X + q.X*q.X) * cross
	}
	sign := math.Copysign(1, signedArea)
	ix = sign*sxx/12 - area*cy*cy
	iy = sign*syy/12 - area*cx*cx
	return ix, iy
}

// Properties computes the frame properties of the shape
func (s *Shape) Properties() (Properties, error) {
	if err := s.Validate(); err != nil {
		return Properties{}, err
	}
	area, _, _ := s.areaAndCentroid()
	ix, iy := s.secondMoments()
	j := s.J
	if j == 0 {
		j = ix + iy
	}
	return Properties{
		Designator: Normalize(s.Name),
		Family:     Custom,
		A:          area,
		Iy:         iy,
		Iz:         ix,
		J:          j,
		Weight:     area * steelWeightPerArea,
	}, nil
}

// IShape returns the outline of a doubly symmetric I-section of depth d,
// flange width bf, flange thickness tf and web thickness tw, fillets ignored.
func IShape(name string, d, bf, tf, tw float64) Shape {
	hb, hw := bf/2, tw/2
	return Shape{
		Name: name,
		Vertices: []Point{
			{-hb, 0}, {hb, 0}, {hb, tf}, {hw, tf},
			{hw, d - tf}, {hb, d - tf}, {hb, d}, {-hb, d},
			{-hb, d - tf}, {-hw, d - tf}, {-hw, tf}, {-hb, tf},
		},
	}
}

// LoadShapeFile loads a shape definition from a YAML or JSON file
func LoadShapeFile(path string) (*Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var shape Shape
	if err := yaml.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("parse shape file %s: %w", path, err)
	}

	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &shape, nil
}
