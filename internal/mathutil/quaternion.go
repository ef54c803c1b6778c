package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// QuatIdentity is the no-rotation quaternion.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// EulerToQuat converts Euler angles (radians) applied in XYZ order
// (R = Rx · Ry · Rz) to a quaternion.
func EulerToQuat(rx, ry, rz float64) Quat {
	cx, sx := math.Cos(rx*0.5), math.Sin(rx*0.5)
	cy, sy := math.Cos(ry*0.5), math.Sin(ry*0.5)
	cz, sz := math.Cos(rz*0.5), math.Sin(rz*0.5)

	return Quat{
		sx*cy*cz + cx*sy*sz, // x
		cx*sy*cz - sx*cy*sz, // y
		cx*cy*sz + sx*sy*cz, // z
		cx*cy*cz - sx*sy*sz, // w
	}
}

// AxisAngleQuat returns the rotation of angle radians about axis.
func AxisAngleQuat(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s := math.Sin(angle * 0.5)
	return Quat{a[0] * s, a[1] * s, a[2] * s, math.Cos(angle * 0.5)}
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// Mat3ToQuat converts a pure rotation matrix to a unit quaternion.
func Mat3ToQuat(m Mat3) Quat {
	m00, m01, m02 := m[0], m[1], m[2]
	m10, m11, m12 := m[3], m[4], m[5]
	m20, m21, m22 := m[6], m[7], m[8]

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{(m21 - m12) * s, (m02 - m20) * s, (m10 - m01) * s, 0.25 / s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{0.25 * s, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s, (m10 - m01) / s}
	}
	return q.Normalize()
}

// Mul returns the Hamilton product a × b (apply b, then a).
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

func (q Quat) Dot(b Quat) float64 {
	return q[0]*b[0] + q[1]*b[1] + q[2]*b[2] + q[3]*b[3]
}

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.Dot(q))
	if l < 1e-12 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return QuatToMat3(q).MulVec3(v)
}

// Slerp interpolates from q toward b by fraction t along the shorter arc.
func (q Quat) Slerp(b Quat, t float64) Quat {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return b
	}

	cosHalf := q.Dot(b)
	if cosHalf < 0 {
		b = Quat{-b[0], -b[1], -b[2], -b[3]}
		cosHalf = -cosHalf
	}
	if cosHalf >= 1 {
		return q
	}

	sqrSin := 1 - cosHalf*cosHalf
	if sqrSin <= 1e-12 {
		// Nearly identical: normalized lerp is exact enough.
		return Quat{
			q[0] + (b[0]-q[0])*t,
			q[1] + (b[1]-q[1])*t,
			q[2] + (b[2]-q[2])*t,
			q[3] + (b[3]-q[3])*t,
		}.Normalize()
	}

	sinHalf := math.Sqrt(sqrSin)
	half := math.Atan2(sinHalf, cosHalf)
	ra := math.Sin((1-t)*half) / sinHalf
	rb := math.Sin(t*half) / sinHalf
	return Quat{
		q[0]*ra + b[0]*rb,
		q[1]*ra + b[1]*rb,
		q[2]*ra + b[2]*rb,
		q[3]*ra + b[3]*rb,
	}
}

// Angle returns the rotation angle (0..π) between q and b.
func (q Quat) Angle(b Quat) float64 {
	d := math.Abs(q.Dot(b))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}

// AxisAngle decomposes q into a unit axis and an angle in radians.
// The identity returns the +Y axis and angle 0.
func (q Quat) AxisAngle() (Vec3, float64) {
	q = q.Normalize()
	if q[3] < 0 {
		q = Quat{-q[0], -q[1], -q[2], -q[3]}
	}
	angle := 2 * math.Acos(math.Min(q[3], 1))
	s := math.Sqrt(1 - q[3]*q[3])
	if s < 1e-9 {
		return Vec3{0, 1, 0}, 0
	}
	return Vec3{q[0] / s, q[1] / s, q[2] / s}, angle
}
