package openlime

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// rotate turns (x, y) by angle degrees using the y-down convention of the
// canvas: x' = cos*x + sin*y, y' = -sin*x + cos*y.
func rotate(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return cos*x + sin*y, -sin*x + cos*y
}

// viewAffine returns the affine matrix of v mapping scene to canvas
// coordinates, in the layout [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Rotate(A) -> Scale(Z) -> Translate(X, Y)
func viewAffine(v View) [6]float64 {
	sin, cos := math.Sincos(v.A * math.Pi / 180)
	z := v.Z
	return [6]float64{z * cos, -z * sin, z * sin, z * cos, v.X, v.Y}
}

// canvasToViewport maps canvas coordinates (origin at the viewport centre)
// to viewport pixels (origin at the top-left corner).
func canvasToViewport(vp Viewport) [6]float64 {
	return [6]float64{1, 0, 0, 1, vp.W / 2, vp.H / 2}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// sceneToViewportMatrix maps scene coordinates to viewport pixels through v.
func sceneToViewportMatrix(v View, vp Viewport) [6]float64 {
	return multiplyAffine(canvasToViewport(vp), viewAffine(v))
}
