package easyeda

import (
	"math"
)

// ArcMid returns the point halfway along an SVG elliptical arc given in
// endpoint form, using the endpoint-to-centre conversion of SVG 1.1 F.6.5.
// ok is false for degenerate arcs (coincident end points); the caller should
// treat them as straight lines.
func ArcMid(seg Segment) (mid Point, ok bool) {
	x1, y1 := seg.Start.X, seg.Start.Y
	x2, y2 := seg.End.X, seg.End.Y
	if x1 == x2 && y1 == y2 {
		return Point{}, false
	}
	rx, ry := math.Abs(seg.RX), math.Abs(seg.RY)
	if rx == 0 || ry == 0 {
		return Point{X: (x1 + x2) / 2, Y: (y1 + y2) / 2}, true
	}

	phi := seg.XAxisRot * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// Step 1: compute (x1', y1')
	dx, dy := (x1-x2)/2, (y1-y2)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Out-of-range radii are scaled up (F.6.6).
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: compute (cx', cy')
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if seg.Large == seg.Sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	// Step 3: compute (cx, cy)
	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	// Step 4: theta1 and dtheta
	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta1 := vectorAngle(1, 0, ux, uy)
	dtheta := vectorAngle(ux, uy, vx, vy)
	if !seg.Sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if seg.Sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	t := theta1 + dtheta/2
	ex, ey := rx*math.Cos(t), ry*math.Sin(t)
	return Point{
		X: cosPhi*ex - sinPhi*ey + cx,
		Y: sinPhi*ex + cosPhi*ey + cy,
	}, true
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
