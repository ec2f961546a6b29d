package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestFromThreePoints_UnitCircle(t *testing.T) {
	c, err := FromThreePoints(XY{X: 1, Y: 0}, XY{X: 0, Y: 1}, XY{X: -1, Y: 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, c.Origin.X, 1e-12)
	assert.InDelta(t, 0.0, c.Origin.Y, 1e-12)
	assert.InDelta(t, 1.0, c.Radius, 1e-12)
}

func TestFromThreePoints_VerticallyAligned(t *testing.T) {
	// p1 and p2 share an X coordinate.
	c, err := FromThreePoints(XY{X: 0, Y: 1}, XY{X: 0, Y: -1}, XY{X: 1, Y: 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, c.Origin.X, 1e-12)
	assert.InDelta(t, 0.0, c.Origin.Y, 1e-12)
	assert.InDelta(t, 1.0, c.Radius, 1e-12)
}

func TestFromThreePoints_Random(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		p1 := XY{X: r.Float64()*200 - 100, Y: r.Float64()*200 - 100}
		p2 := XY{X: r.Float64()*200 - 100, Y: r.Float64()*200 - 100}
		p3 := XY{X: r.Float64()*200 - 100, Y: r.Float64()*200 - 100}

		c, err := FromThreePoints(p1, p2, p3)
		if err != nil {
			// Random triples are essentially never collinear.
			t.Fatalf("unexpected error for %v %v %v: %v", p1, p2, p3, err)
		}

		for _, p := range []XY{p1, p2, p3} {
			d := p.Distance(c.Origin)
			if !scalar.EqualWithinAbsOrRel(d, c.Radius, 1e-6, 1e-9) {
				t.Errorf("point %v at distance %v from origin, radius %v", p, d, c.Radius)
			}
		}
	}
}

func TestFromThreePoints_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 XY
	}{
		{name: "collinear", p1: XY{X: 0, Y: 0}, p2: XY{X: 1, Y: 1}, p3: XY{X: 2, Y: 2}},
		{name: "vertical line", p1: XY{X: 3, Y: 0}, p2: XY{X: 3, Y: 1}, p3: XY{X: 3, Y: 5}},
		{name: "coincident", p1: XY{X: 1, Y: 1}, p2: XY{X: 1, Y: 1}, p3: XY{X: 1, Y: 1}},
		{name: "two equal", p1: XY{X: 1, Y: 1}, p2: XY{X: 1, Y: 1}, p3: XY{X: 4, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromThreePoints(tt.p1, tt.p2, tt.p3)
			assert.ErrorIs(t, err, ErrDegenerateCircle)
		})
	}
}

func TestCircle_Angle(t *testing.T) {
	c := Circle{Origin: XY{X: 1, Y: 1}, Radius: 1}

	assert.InDelta(t, 0.0, c.Angle(XY{X: 2, Y: 1}), 1e-12)
	assert.InDelta(t, math.Pi/2, c.Angle(XY{X: 1, Y: 2}), 1e-12)
	assert.InDelta(t, math.Pi, c.Angle(XY{X: 0, Y: 1}), 1e-12)
	// Below and to the right stays negative rather than wrapping to 7pi/4.
	assert.InDelta(t, -math.Pi/4, c.Angle(XY{X: 2, Y: 0}), 1e-12)
	// Below and to the left lands past pi.
	assert.InDelta(t, 5*math.Pi/4, c.Angle(XY{X: 0, Y: 0}), 1e-12)
}

func TestCircle_SampleBetween(t *testing.T) {
	c := Circle{Origin: XY{}, Radius: 2}
	p1 := c.Query(0.2)
	p2 := c.Query(1.4)

	for _, resolution := range []int{2, 3, 10, 20} {
		points := c.SampleBetween(p1, p2, resolution)
		require.Len(t, points, resolution-1)

		prev := c.Angle(p1)
		for _, p := range points {
			assert.InDelta(t, c.Radius, p.Distance(c.Origin), 1e-9)

			ang := c.Angle(p)
			assert.Greater(t, ang, prev)
			assert.Less(t, ang, c.Angle(p2))
			prev = ang
		}
	}
}

func TestCircle_SampleBetween_Wraps(t *testing.T) {
	c := Circle{Origin: XY{}, Radius: 1}
	// Angle(p1) = 3pi/4 > Angle(p2) = -pi/4, so the sweep adds 2pi and passes through pi.
	p1 := c.Query(3 * math.Pi / 4)
	p2 := c.Query(-math.Pi / 4)

	points := c.SampleBetween(p1, p2, 4)
	require.Len(t, points, 3)

	assert.InDelta(t, -1.0, points[0].X, 1e-9)
	assert.InDelta(t, 0.0, points[0].Y, 1e-9)
	assert.InDelta(t, 0.0, points[2].X, 1e-9)
	assert.InDelta(t, -1.0, points[2].Y, 1e-9)
}

func TestCircle_SampleBetween_LowResolution(t *testing.T) {
	c := Circle{Radius: 1}
	assert.Empty(t, c.SampleBetween(XY{X: 1}, XY{Y: 1}, 1))
	assert.Empty(t, c.SampleBetween(XY{X: 1}, XY{Y: 1}, 0))
}
