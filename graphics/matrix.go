// seehuhn.de/go/annotate - add annotations to PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package graphics

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Matrix contains a PDF transformation matrix.
// The elements are stored in the same order as for the "cm" operator.
//
// If M = [a b c d e f] is a [Matrix], then M maps a point (x, y) to
//
//	(a*x + c*y + e, b*x + d*y + f).
type Matrix = matrix.Matrix

// Identity returns the identity transformation.
func Identity() Matrix {
	return matrix.Identity
}

// Translate moves the origin of the coordinate system to (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale scales the coordinate system.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate rotates the coordinate system counter-clockwise by the given angle
// (in degrees).  Multiples of 90 degrees give exact results.
func Rotate(degrees float64) Matrix {
	var c, s float64
	if q := degrees / 90; q == math.Trunc(q) {
		switch k := int(math.Mod(q, 4)); (k + 4) % 4 {
		case 0:
			c, s = 1, 0
		case 1:
			c, s = 0, 1
		case 2:
			c, s = -1, 0
		case 3:
			c, s = 0, -1
		}
	} else {
		phi := degrees * math.Pi / 180
		c = math.Cos(phi)
		s = math.Sin(phi)
	}
	return Matrix{c, s, -s, c, 0, 0}
}

// Multiply returns the product of the given matrices.  Products are formed
// from left to right, so that Multiply(A, B, C) = (A·B)·C.
//
// In terms of transformations, the right-most matrix is applied first:
// Multiply(T, R, S) first scales with S, then rotates with R, and finally
// translates with T.  Without arguments, the identity is returned.
func Multiply(mm ...Matrix) Matrix {
	res := Identity()
	for _, m := range mm {
		res = mul(res, m)
	}
	return res
}

// mul computes A·B, i.e. the transformation which applies B first and A
// second.
func mul(A, B Matrix) Matrix {
	return B.Mul(A)
}

// SingularMatrixError is returned by [Invert] when the matrix has no
// inverse.
type SingularMatrixError struct {
	M Matrix
}

func (err *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix %v", [6]float64(err.M))
}

// Invert computes the inverse of the transformation matrix M.
func Invert(M Matrix) (Matrix, error) {
	det := M[0]*M[3] - M[1]*M[2]
	if math.Abs(det) < 1e-12 {
		return Matrix{}, &SingularMatrixError{M: M}
	}
	invDet := 1 / det
	return Matrix{
		M[3] * invDet, -M[1] * invDet,
		-M[2] * invDet, M[0] * invDet,
		(M[2]*M[5] - M[3]*M[4]) * invDet,
		(M[1]*M[4] - M[0]*M[5]) * invDet,
	}, nil
}

// ApplyToPoint maps the point p using M.
func ApplyToPoint(p vec.Vec2, M Matrix) vec.Vec2 {
	return vec.Vec2{
		X: p.X*M[0] + p.Y*M[2] + M[4],
		Y: p.X*M[1] + p.Y*M[3] + M[5],
	}
}

// ApplyToVector maps the displacement v using M.  In contrast to
// [ApplyToPoint], the translation part of M is ignored.
func ApplyToVector(v vec.Vec2, M Matrix) vec.Vec2 {
	return vec.Vec2{
		X: v.X*M[0] + v.Y*M[2],
		Y: v.X*M[1] + v.Y*M[3],
	}
}

// TransformRect returns the smallest axis-parallel rectangle which contains
// the image of r under M.
func TransformRect(r rect.Rect, M Matrix) rect.Rect {
	corners := []vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
	res := rect.Rect{
		LLx: math.Inf(+1),
		LLy: math.Inf(+1),
		URx: math.Inf(-1),
		URy: math.Inf(-1),
	}
	for _, c := range corners {
		p := ApplyToPoint(c, M)
		res.LLx = math.Min(res.LLx, p.X)
		res.LLy = math.Min(res.LLy, p.Y)
		res.URx = math.Max(res.URx, p.X)
		res.URy = math.Max(res.URy, p.Y)
	}
	return res
}
