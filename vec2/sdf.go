package vec2

import "math"

// sign returns -1 for strictly negative values and +1 otherwise (0
// included), giving a deterministic branch for on-axis query points.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// CircleSDF returns (phi, outward normal) for a point p against a circle
// collider with the given center and radius. phi >= 0 outside, < 0 inside.
// A query point exactly at the center is degenerate (no well-defined
// direction); it returns (-radius, (1,0)) per contract.
func CircleSDF(p, center Vec2, radius float64) (float64, Vec2) {
	d := p.Sub(center)
	dist := d.Len()
	if dist < 1e-12 {
		return -radius, Vec2{1, 0}
	}
	n := d.Scale(1 / dist)
	return dist - radius, n
}

// CapsuleSDF returns (phi, outward normal) for a point p against a capsule
// collider: a line segment of half-length halfLen along unit axis through
// center, inflated by radius. If axis is degenerate (zero length) the
// capsule collapses to a circle; callers should ensure axis is unit.
func CapsuleSDF(p, center, axis Vec2, halfLen, radius float64) (float64, Vec2) {
	rel := p.Sub(center)
	t := rel.Dot(axis)
	if t > halfLen {
		t = halfLen
	} else if t < -halfLen {
		t = -halfLen
	}
	closest := center.Add(axis.Scale(t))
	diff := p.Sub(closest)
	dist := diff.Len()
	if dist < 1e-12 {
		// Degenerate: point lies exactly on the capsule's spine. Fall
		// back to a normal perpendicular to the axis so the result is
		// still a well-formed unit outward direction.
		return -radius, axis.Perp()
	}
	n := diff.Scale(1 / dist)
	return dist - radius, n
}

// BoxSDF returns (phi, outward normal) for a point p against an oriented
// box collider: center, unit local-X axis, and half-extents (hx, hy)
// along the local X/Y axes (local Y is axis rotated +90 degrees).
func BoxSDF(p, center, axis Vec2, hx, hy float64) (float64, Vec2) {
	localY := axis.Perp()
	rel := p.Sub(center)
	lx := rel.Dot(axis)
	ly := rel.Dot(localY)

	qx := math.Abs(lx) - hx
	qy := math.Abs(ly) - hy

	var nlx, nly, phi float64
	if qx <= 0 && qy <= 0 {
		// Strictly inside (or exactly at the center): pick the nearest
		// face. At the exact center this reduces to comparing hx, hy,
		// i.e. tie-breaking toward the axis of the smaller half-extent.
		if -qx < -qy {
			nlx, nly = sign(lx), 0
		} else {
			nlx, nly = 0, sign(ly)
		}
		phi = math.Max(qx, qy)
	} else {
		qxPos := math.Max(qx, 0)
		qyPos := math.Max(qy, 0)
		phi = math.Sqrt(qxPos*qxPos + qyPos*qyPos)
		nlx = qxPos * sign(lx)
		nly = qyPos * sign(ly)
		nl := Vec2{nlx, nly}.Unit()
		nlx, nly = nl.X, nl.Y
	}

	normal := axis.Scale(nlx).Add(localY.Scale(nly))
	return phi, normal
}
