package isa

// Format is an instruction encoding format.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R = Format(0) // R
	FORMAT_I = Format(1) // I
	FORMAT_S = Format(2) // S
	FORMAT_B = Format(3) // B
	FORMAT_U = Format(4) // U
	FORMAT_J = Format(5) // J
)

// Signed immediate ranges, in bytes for B and J.
const (
	IMM12_MIN = -(1 << 11)
	IMM12_MAX = (1 << 11) - 1
	IMM13_MIN = -(1 << 12)
	IMM13_MAX = (1 << 12) - 2
	IMM21_MIN = -(1 << 20)
	IMM21_MAX = (1 << 20) - 2
	IMM20_MIN = -(1 << 19)
	IMM20_MAX = (1 << 20) - 1 // U accepts the unsigned 20-bit range too.
	SHAMT_MAX = 31
)

// ImmediateRange returns the inclusive range of immediates accepted by the
// descriptor's format.
func (d Descriptor) ImmediateRange() (lo, hi int64) {
	switch d.Format {
	case FORMAT_I:
		if d.Shift {
			return 0, SHAMT_MAX
		}
		return IMM12_MIN, IMM12_MAX
	case FORMAT_S:
		return IMM12_MIN, IMM12_MAX
	case FORMAT_B:
		return IMM13_MIN, IMM13_MAX
	case FORMAT_J:
		return IMM21_MIN, IMM21_MAX
	case FORMAT_U:
		return IMM20_MIN, IMM20_MAX
	}

	return 0, 0
}

// CheckImmediate validates an immediate against the descriptor's field.
func (d Descriptor) CheckImmediate(value int64) (err error) {
	lo, hi := d.ImmediateRange()
	if value < lo || value > hi {
		err = ErrImmediate{Value: value, Min: lo, Max: hi}
		return
	}

	if (d.Format == FORMAT_B || d.Format == FORMAT_J) && value&1 != 0 {
		err = ErrImmediateAlign(value)
		return
	}

	return
}
