// Package svgpath holds path data as a list of commands and renders it as an
// SVG "d" attribute. Geometry code builds Paths; only this package decides
// how numbers are written.
package svgpath

import (
	"strings"

	"ballface/internal/mathutil"
)

// Op identifies a path command.
type Op uint8

const (
	OpMove  Op = iota // M x y
	OpLine            // L x y
	OpArc             // A rx ry rot large sweep x y
	OpClose           // Z
	OpNudge           // l0 0.0001
)

// NudgeLength is the y offset of the zero-length line written by Nudge.
const NudgeLength = 0.0001

// Command is a single path command. RX, RY, Rot, Large and Sweep are only
// meaningful for OpArc. RX may be negative; SVG consumers use its magnitude.
type Command struct {
	Op     Op
	X, Y   float64
	RX, RY float64
	Rot    float64 // degrees
	Large  bool
	Sweep  bool
}

// Path is an ordered list of commands. The zero value is an empty path.
type Path struct {
	cmds []Command
}

func (p *Path) MoveTo(pt mathutil.Vec3) {
	p.cmds = append(p.cmds, Command{Op: OpMove, X: pt[0], Y: pt[1]})
}

func (p *Path) LineTo(pt mathutil.Vec3) {
	p.cmds = append(p.cmds, Command{Op: OpLine, X: pt[0], Y: pt[1]})
}

// ArcTo appends an elliptical arc ending at pt.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, pt mathutil.Vec3) {
	p.cmds = append(p.cmds, Command{
		Op: OpArc, X: pt[0], Y: pt[1],
		RX: rx, RY: ry, Rot: rot, Large: large, Sweep: sweep,
	})
}

func (p *Path) Close() {
	p.cmds = append(p.cmds, Command{Op: OpClose})
}

// Nudge appends a zero-length relative line so renderers draw a dot for a
// single-point subpath.
func (p *Path) Nudge() {
	p.cmds = append(p.cmds, Command{Op: OpNudge})
}

// Append adds all of q's commands to p.
func (p *Path) Append(q *Path) {
	if q != nil {
		p.cmds = append(p.cmds, q.cmds...)
	}
}

// AppendTail adds q's commands after its leading MoveTo. It is used to
// continue a subpath with a fragment whose start point was already reached.
func (p *Path) AppendTail(q *Path) {
	if q == nil || len(q.cmds) == 0 {
		return
	}
	tail := q.cmds
	if tail[0].Op == OpMove {
		tail = tail[1:]
	}
	p.cmds = append(p.cmds, tail...)
}

// Len is the number of commands.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.cmds)
}

func (p *Path) Empty() bool { return p.Len() == 0 }

// Commands returns the commands in order. The slice must not be modified.
func (p *Path) Commands() []Command {
	if p == nil {
		return nil
	}
	return p.cmds
}

// Clone returns a copy that shares no storage with p.
func (p *Path) Clone() *Path {
	if p == nil {
		return &Path{}
	}
	return &Path{cmds: append([]Command(nil), p.cmds...)}
}

// String renders the path as SVG path data.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range p.cmds {
		c.write(&b)
	}
	return b.String()
}

func (c Command) write(b *strings.Builder) {
	switch c.Op {
	case OpMove:
		b.WriteByte('M')
		b.WriteString(Pt(c.X, c.Y))
	case OpLine:
		b.WriteByte('L')
		b.WriteString(Pt(c.X, c.Y))
	case OpArc:
		b.WriteByte('A')
		b.WriteString(FxShort(c.RX))
		b.WriteByte(' ')
		b.WriteString(FxShort(c.RY))
		b.WriteByte(' ')
		b.WriteString(FxShort(c.Rot))
		b.WriteString(flag(c.Large))
		b.WriteString(flag(c.Sweep))
		b.WriteByte(' ')
		b.WriteString(Pt(c.X, c.Y))
	case OpClose:
		b.WriteByte('Z')
	case OpNudge:
		b.WriteString("l0 0.0001")
	}
}

func flag(f bool) string {
	if f {
		return " 1"
	}
	return " 0"
}
