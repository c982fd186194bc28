package svgpath

// Sink receives absolute path commands. Arc radii are passed as written
// (possibly negative) and the rotation is in degrees.
type Sink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64)
	ClosePath()
}

// Walk replays p into s, resolving relative commands against the current
// point. After ClosePath the current point returns to the subpath start.
func (p *Path) Walk(s Sink) {
	var cx, cy, sx, sy float64
	for _, c := range p.Commands() {
		switch c.Op {
		case OpMove:
			s.MoveTo(c.X, c.Y)
			cx, cy = c.X, c.Y
			sx, sy = c.X, c.Y
		case OpLine:
			s.LineTo(c.X, c.Y)
			cx, cy = c.X, c.Y
		case OpArc:
			s.ArcTo(c.RX, c.RY, c.Rot, c.Large, c.Sweep, c.X, c.Y)
			cx, cy = c.X, c.Y
		case OpClose:
			s.ClosePath()
			cx, cy = sx, sy
		case OpNudge:
			cy += NudgeLength
			s.LineTo(cx, cy)
		}
	}
}
