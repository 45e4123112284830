package gltf

import "github.com/go-gl/mathgl/mgl32"

// Identity values used for absent transform components.
var (
	IdentityTranslation = [3]float32{0, 0, 0}
	IdentityRotation    = [4]float32{0, 0, 0, 1}
	IdentityScale       = [3]float32{1, 1, 1}
	IdentityMatrix      = [16]float32(mgl32.Ident4())
)

// Transform is the local transform of a node, held either as a column-major
// matrix or as translation, rotation and scale.
type Transform struct {
	IsMatrix    bool
	Matrix      [16]float32 // Set when IsMatrix
	Translation [3]float32
	Rotation    [4]float32 // Quaternion X, Y, Z, W
	Scale       [3]float32
}

// Transform resolves which representation of the node transform is active.
//
// When translation, rotation and scale are all present they are used even if
// a matrix is also given. A matrix with only some of them is used as is.
// Without a matrix, each absent component takes its identity value.
func (n *Node) Transform() Transform {
	fullTRS := n.Translation != nil && n.Rotation != nil && n.Scale != nil
	if n.Matrix != nil && !fullTRS {
		return Transform{IsMatrix: true, Matrix: *n.Matrix}
	}

	t := Transform{
		Translation: IdentityTranslation,
		Rotation:    IdentityRotation,
		Scale:       IdentityScale,
	}
	if n.Translation != nil {
		t.Translation = *n.Translation
	}
	if n.Rotation != nil {
		t.Rotation = *n.Rotation
	}
	if n.Scale != nil {
		t.Scale = *n.Scale
	}
	return t
}

// Mat4 returns the transform as an mgl32 matrix, composing T * R * S for TRS form.
func (t Transform) Mat4() mgl32.Mat4 {
	if t.IsMatrix {
		return mgl32.Mat4(t.Matrix)
	}
	tr := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	rot := t.quat().Normalize().Mat4()
	sc := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(rot).Mul4(sc)
}

// Matrix4 returns the transform as a column-major 4x4 matrix.
func (t Transform) Matrix4() [16]float32 {
	return [16]float32(t.Mat4())
}

// Decompose returns the transform in TRS form. A matrix with shear cannot be
// represented exactly; the rotation is then taken from its normalized basis.
func (t Transform) Decompose() Transform {
	if !t.IsMatrix {
		return t
	}
	m := mgl32.Mat4(t.Matrix)

	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Det() < 0 {
		sx = -sx
	}

	var rot mgl32.Mat4
	rot.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	for i, s := range [3]float32{sx, sy, sz} {
		col := m.Col(i)
		if s != 0 {
			col = col.Mul(1 / s)
		}
		col[3] = 0
		rot.SetCol(i, col)
	}
	q := mgl32.Mat4ToQuat(rot).Normalize()

	pos := m.Col(3)
	return Transform{
		Translation: [3]float32{pos[0], pos[1], pos[2]},
		Rotation:    [4]float32{q.V[0], q.V[1], q.V[2], q.W},
		Scale:       [3]float32{sx, sy, sz},
	}
}

func (t Transform) quat() mgl32.Quat {
	r := t.Rotation
	return mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
}
