package banana

import "math"

// Transformation is a local offset: position, rotation in degrees, and scale.
// Model parts carry one as their rest pose and animations produce one per
// part per frame.
type Transformation struct {
	Position Vec2
	Rotation float64 // degrees
	Scale    Scale
}

// IdentityTransform is the offset that leaves a part unchanged.
var IdentityTransform = Transformation{Scale: UniformScale(1)}

// DrawTransform is the final, camera-relative placement of one part.
type DrawTransform struct {
	Translation Vec2    // centre of the part on the surface
	Rotation    float64 // radians
	Scale       Scale
}

// identityAffine is the identity affine matrix.
var identityAffine = [6]float64{1, 0, 0, 1, 0, 0}

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

func translateAffine(x, y float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, x, y}
}

func rotateAffine(radians float64) [6]float64 {
	sin, cos := math.Sincos(radians)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}
