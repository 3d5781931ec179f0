package render

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

// Chart geometry in SVG user units.
const (
	radarSize   = 420.0
	radarRadius = 150.0
	labelOffset = 22.0
	ringStep    = 2
)

// Point is an SVG coordinate.
type Point struct {
	X float64
	Y float64
}

// Axis is one trait spoke of the radar chart.
type Axis struct {
	Trait string
	Label string
	// Score is the value reported by the model; Value is Score clamped to [0, Max].
	Score  int
	Value  int
	Max    int
	Scored bool
	End    Point
	Tip    Point
	Text   Point
	Anchor string
}

// Radar is a spider chart of the ten persona traits.
type Radar struct {
	Size    float64
	Center  Point
	Axes    []Axis
	Rings   []string
	Polygon string
	// Ignored lists score keys that are not one of the chart traits.
	Ignored []string
}

// NewRadar lays out one axis per trait in models.Traits order. Traits missing from scores are drawn
// at zero; keys outside the trait set are listed in Ignored.
func NewRadar(scores map[string]int) Radar {
	center := Point{X: radarSize / 2, Y: radarSize / 2}
	n := len(models.Traits)
	radar := Radar{
		Size:   radarSize,
		Center: center,
		Axes:   make([]Axis, 0, n),
	}

	tips := make([]Point, 0, n)
	for i, trait := range models.Traits {
		angle := axisAngle(i, n)
		score, scored := scores[trait]
		value := clamp(score, 0, models.MaxTraitScore)

		tip := polar(center, radarRadius*float64(value)/models.MaxTraitScore, angle)
		tips = append(tips, tip)
		radar.Axes = append(radar.Axes, Axis{
			Trait:  trait,
			Label:  models.Label(trait),
			Score:  score,
			Value:  value,
			Max:    models.MaxTraitScore,
			Scored: scored,
			End:    polar(center, radarRadius, angle),
			Tip:    tip,
			Text:   polar(center, radarRadius+labelOffset, angle),
			Anchor: textAnchor(angle),
		})
	}
	radar.Polygon = pointsAttr(tips)

	for level := ringStep; level <= models.MaxTraitScore; level += ringStep {
		ring := make([]Point, 0, n)
		for i := range n {
			ring = append(ring, polar(center, radarRadius*float64(level)/models.MaxTraitScore, axisAngle(i, n)))
		}
		radar.Rings = append(radar.Rings, pointsAttr(ring))
	}

	for trait := range scores {
		if !slices.Contains(models.Traits, trait) {
			radar.Ignored = append(radar.Ignored, trait)
		}
	}
	slices.Sort(radar.Ignored)
	return radar
}

// axisAngle starts at 12 o'clock and runs clockwise.
func axisAngle(i, n int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
}

func polar(center Point, r float64, angle float64) Point {
	return Point{
		X: round2(center.X + r*math.Cos(angle)),
		Y: round2(center.Y + r*math.Sin(angle)),
	}
}

func textAnchor(angle float64) string {
	x := math.Cos(angle)
	switch {
	case x > 0.1:
		return "start"
	case x < -0.1:
		return "end"
	default:
		return "middle"
	}
}

func pointsAttr(points []Point) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, fmt.Sprintf("%.2f,%.2f", p.X, p.Y))
	}
	return strings.Join(parts, " ")
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
