package gm

// Affine is a linear transformation followed by a translation.
type Affine struct {
	Matrix      Mat
	Translation Vec
}

func IdentityAffine() Affine {
	return Affine{Matrix: IdentityMat()}
}

// AffineFromTRS builds the transform that scales, then rotates and finally translates.
func AffineFromTRS(translation Vec, rotation Rad, scale Vec) Affine {
	return Affine{
		Matrix:      RotationMat(rotation).Mul(ScaleMat(scale)),
		Translation: translation,
	}
}

func (a Affine) Translate(offset Vec) Affine {
	return a.Mul(Affine{Matrix: IdentityMat(), Translation: offset})
}

func (a Affine) Rotate(angle Rad) Affine {
	return a.Mul(Affine{Matrix: RotationMat(angle)})
}

func (a Affine) Scale(scale Vec) Affine {
	return a.Mul(Affine{Matrix: ScaleMat(scale)})
}

// Mul returns the transform that applies other first and a second. This
// is the way a child transform is combined with the transform of its parent.
func (a Affine) Mul(other Affine) Affine {
	return Affine{
		Matrix:      a.Matrix.Mul(other.Matrix),
		Translation: a.Matrix.Transform(other.Translation).Add(a.Translation),
	}
}

// Transform applies the transform to a point.
func (a Affine) Transform(point Vec) Vec {
	return a.Matrix.Transform(point).Add(a.Translation)
}

// TransformVec applies only the linear part, e.g. to transform a size.
func (a Affine) TransformVec(v Vec) Vec {
	return a.Matrix.Transform(v)
}

func (a Affine) TryInverse() (Affine, bool) {
	inverse, ok := a.Matrix.TryInverse()
	if !ok {
		return Affine{}, false
	}

	return Affine{
		Matrix:      inverse,
		Translation: inverse.Transform(a.Translation).Mul(-1),
	}, true
}
