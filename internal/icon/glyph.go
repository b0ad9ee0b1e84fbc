package icon

import "math"

// GridSize is the side of the square design grid every glyph is drawn on.
const GridSize = 24.0

// StrokeWidth is the outline width on the design grid.
const StrokeWidth = 2.0

// Point is a coordinate on the design grid.
type Point struct {
	X, Y float64
}

// Path is a stroked polyline, optionally closed.
type Path struct {
	Points []Point
	Closed bool
}

// Circle is a stroked circle, or a filled dot when Filled is set.
type Circle struct {
	CX, CY, R float64
	Filled    bool
}

// Glyph is the vector outline of an icon. Glyphs are stroked, never filled,
// apart from dots.
type Glyph struct {
	Paths   []Path
	Circles []Circle
}

func pts(xy ...float64) []Point {
	out := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Point{xy[i], xy[i+1]})
	}
	return out
}

func open(xy ...float64) Path   { return Path{Points: pts(xy...)} }
func closed(xy ...float64) Path { return Path{Points: pts(xy...), Closed: true} }

// radialPolygon alternates between two radii, used for the gear and star.
func radialPolygon(cx, cy, outer, inner float64, spikes int, rot float64) Path {
	n := spikes * 2
	p := Path{Points: make([]Point, 0, n), Closed: true}
	for i := range n {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := rot + float64(i)*math.Pi/float64(spikes)
		p.Points = append(p.Points, Point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return p
}

var glyphs = [numIDs]Glyph{
	Unknown: {Circles: []Circle{{12, 12, 10, false}, {12, 12, 1.5, true}}},
	Activity: {Paths: []Path{
		open(22, 12, 18, 12, 15, 21, 9, 3, 6, 12, 2, 12),
	}},
	Check: {Paths: []Path{
		open(20, 6, 9, 17, 4, 12),
	}},
	Target: {Circles: []Circle{{12, 12, 10, false}, {12, 12, 6, false}, {12, 12, 2, false}}},
	Layers: {Paths: []Path{
		closed(12, 2, 2, 7, 12, 12, 22, 7),
		open(2, 17, 12, 22, 22, 17),
		open(2, 12, 12, 17, 22, 12),
	}},
	Users: {
		Paths: []Path{
			open(1, 21, 1, 19, 3, 16, 6, 15, 12, 15, 15, 16, 17, 19, 17, 21),
			open(16, 3.1, 18, 4, 19, 7, 18, 10, 16, 10.9),
			open(23, 21, 23, 19, 21, 16, 19, 15.1),
		},
		Circles: []Circle{{9, 7, 4, false}},
	},
	Settings: {
		Paths:   []Path{radialPolygon(12, 12, 10, 7.5, 8, -math.Pi/2)},
		Circles: []Circle{{12, 12, 3, false}},
	},
	Zap: {Paths: []Path{
		closed(13, 2, 3, 14, 12, 14, 11, 22, 21, 10, 12, 10),
	}},
	Shield: {Paths: []Path{
		closed(12, 22, 20, 18, 20, 5, 12, 2, 4, 5, 4, 18),
	}},
	Sparkles: {Paths: []Path{
		closed(12, 3, 13.9, 8.1, 19, 10, 13.9, 11.9, 12, 17, 10.1, 11.9, 5, 10, 10.1, 8.1),
		open(20, 3, 20, 7),
		open(22, 5, 18, 5),
		open(4, 17, 4, 21),
		open(6, 19, 2, 19),
	}},
	ChevronRight: {Paths: []Path{
		open(9, 18, 15, 12, 9, 6),
	}},
	ArrowRight: {Paths: []Path{
		open(5, 12, 19, 12),
		open(12, 5, 19, 12, 12, 19),
	}},
	Star: {Paths: []Path{radialPolygon(12, 12.5, 10, 4.2, 5, -math.Pi/2)}},
	Clock: {
		Paths:   []Path{open(12, 6, 12, 12, 16, 14)},
		Circles: []Circle{{12, 12, 10, false}},
	},
	Search: {
		Paths:   []Path{open(21, 21, 16.65, 16.65)},
		Circles: []Circle{{11, 11, 8, false}},
	},
	TrendingUp: {Paths: []Path{
		open(22, 7, 13.5, 15.5, 8.5, 10.5, 2, 17),
		open(16, 7, 22, 7, 22, 13),
	}},
	Calendar: {Paths: []Path{
		closed(3, 4, 21, 4, 21, 22, 3, 22),
		open(16, 2, 16, 6),
		open(8, 2, 8, 6),
		open(3, 10, 21, 10),
	}},
	Lightbulb: {
		Paths: []Path{
			open(9, 18, 15, 18),
			open(10, 22, 14, 22),
			open(10, 14.5, 10, 18),
			open(14, 14.5, 14, 18),
		},
		Circles: []Circle{{12, 9, 6, false}},
	},
	Flag: {Paths: []Path{
		closed(4, 15, 8, 14, 12, 16, 16, 16, 20, 15, 20, 3, 16, 4, 12, 2, 8, 2, 4, 3),
		open(4, 22, 4, 15),
	}},
	MessageSquare: {Paths: []Path{
		closed(3, 21, 3, 5, 5, 3, 19, 3, 21, 5, 21, 15, 19, 17, 7, 17),
	}},
	Globe: {
		Paths: []Path{
			open(2, 12, 22, 12),
			closed(12, 2, 8, 7, 8, 17, 12, 22, 16, 17, 16, 7),
		},
		Circles: []Circle{{12, 12, 10, false}},
	},
}

// Glyph returns the outline for id. Out-of-range IDs get the default glyph.
func (id ID) Glyph() Glyph {
	if id < 0 || id >= numIDs {
		return glyphs[Unknown]
	}
	return glyphs[id]
}
