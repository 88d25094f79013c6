package track

// RotationFormat selects how a rotation track is represented in the packed
// stream, per §3 "Rotation formats".
type RotationFormat int

const (
	// QuatFull stores all 4 components at full f32 precision (128 bits).
	QuatFull RotationFormat = iota
	// QuatDropWFull stores 3 components at full f32 precision (96 bits);
	// w is reconstructed on decompress as sqrt(1 - x^2 - y^2 - z^2).
	QuatDropWFull
	// QuatDropWVariable packs x,y,z at n bits each, normalized against a
	// range. The only rotation format that participates in the search.
	QuatDropWVariable
)

// VectorFormat selects how a translation or scale track is represented.
type VectorFormat int

const (
	// Vector3Full stores x,y,z at full f32 precision (96 bits).
	Vector3Full VectorFormat = iota
	// Vector3Variable packs x,y,z at n bits each. Participates in the
	// search.
	Vector3Variable
)

// NeedsSearch reports whether a rotation format's bit rate is subject to
// §4's search at all.
func (f RotationFormat) NeedsSearch() bool {
	return f == QuatDropWVariable
}

// NeedsSearch reports whether a vector format's bit rate is subject to
// §4's search.
func (f VectorFormat) NeedsSearch() bool {
	return f == Vector3Variable
}
