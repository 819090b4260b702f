package curve

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

var secp256k1Order = saferith.ModulusFromBytes([]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
})

// Secp256k1 is the curve used by Bitcoin.
//
// Scalars are encoded as 32 bytes in big endian order, and points use the
// 33 byte SEC1 compressed format. The identity has no encoding.
//
// The underlying library only provides variable time scalar multiplication,
// so ConstantTime reports false, and secret scalars must not be used with this curve.
type Secp256k1 struct{}

func (Secp256k1) NewPoint() Point {
	return new(Secp256k1Point)
}

func (Secp256k1) NewBasePoint() Point {
	out := new(Secp256k1Point)
	var one secp256k1.ModNScalar
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(&one, &out.value)
	return out
}

func (Secp256k1) NewScalar() Scalar {
	return new(Secp256k1Scalar)
}

func (Secp256k1) Name() string {
	return "secp256k1"
}

func (Secp256k1) ScalarBytes() int {
	return 32
}

func (Secp256k1) PointBytes() int {
	return 33
}

func (Secp256k1) ConstantTime() bool {
	return false
}

func (Secp256k1) Order() *saferith.Modulus {
	return secp256k1Order
}

// HashToPoint uses try-and-increment on SHA3-256 digests as x coordinates.
//
// Every attempt succeeds with probability about 1/2.
func (Secp256k1) HashToPoint(data []byte) Point {
	buf := make([]byte, 33)
	buf[0] = secp256k1.PubKeyFormatCompressedEven
	var ctr [4]byte
	for i := uint32(0); ; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		h := sha3.New256()
		_, _ = h.Write(ctr[:])
		_, _ = h.Write(data)
		copy(buf[1:], h.Sum(nil))
		out := new(Secp256k1Point)
		if err := out.UnmarshalBinary(buf); err == nil {
			return out
		}
	}
}

// Secp256k1Scalar is an integer modulo the order of secp256k1.
type Secp256k1Scalar struct {
	value secp256k1.ModNScalar
}

func secp256k1CastScalar(generic Scalar) *Secp256k1Scalar {
	out, ok := generic.(*Secp256k1Scalar)
	if !ok {
		panic(mismatch("scalar", "secp256k1", generic))
	}
	return out
}

// val returns the underlying value, with nil standing for 0.
func (s *Secp256k1Scalar) val() *secp256k1.ModNScalar {
	if s == nil {
		return new(secp256k1.ModNScalar)
	}
	return &s.value
}

func (*Secp256k1Scalar) Curve() Curve {
	return Secp256k1{}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Secp256k1Scalar) MarshalBinary() ([]byte, error) {
	data := s.val().Bytes()
	return data[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Secp256k1Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("%w: secp256k1 scalar must be 32 bytes, found %d", ErrInvalidEncoding, len(data))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(data); overflow {
		return fmt.Errorf("%w: secp256k1 scalar is >= q", ErrInvalidEncoding)
	}
	s.value.Set(&scalar)
	return nil
}

func (s *Secp256k1Scalar) Add(that Scalar) Scalar {
	other := secp256k1CastScalar(that)
	out := new(Secp256k1Scalar)
	out.value.Add2(s.val(), other.val())
	return out
}

func (s *Secp256k1Scalar) Sub(that Scalar) Scalar {
	other := secp256k1CastScalar(that)
	out := new(Secp256k1Scalar)
	out.value.NegateVal(other.val()).Add(s.val())
	return out
}

func (s *Secp256k1Scalar) Mul(that Scalar) Scalar {
	other := secp256k1CastScalar(that)
	out := new(Secp256k1Scalar)
	out.value.Mul2(s.val(), other.val())
	return out
}

func (s *Secp256k1Scalar) Negate() Scalar {
	out := new(Secp256k1Scalar)
	out.value.NegateVal(s.val())
	return out
}

func (s *Secp256k1Scalar) Invert() (Scalar, error) {
	if s.val().IsZero() {
		return nil, fmt.Errorf("%w: inverse of zero", ErrInvalidOperand)
	}
	out := new(Secp256k1Scalar)
	out.value.InverseValNonConst(s.val())
	return out, nil
}

func (s *Secp256k1Scalar) Equal(that Scalar) bool {
	other := secp256k1CastScalar(that)
	return s.val().Equals(other.val())
}

func (s *Secp256k1Scalar) IsZero() bool {
	return s.val().IsZero()
}

func (s *Secp256k1Scalar) SetNat(x *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(x, secp256k1Order)
	buf := make([]byte, 32)
	reduced.FillBytes(buf)
	s.value.SetByteSlice(buf)
	return s
}

func (s *Secp256k1Scalar) Act(that Point) Point {
	other := secp256k1CastPoint(that)
	out := new(Secp256k1Point)
	secp256k1.ScalarMultNonConst(s.val(), other.jac(), &out.value)
	return out
}

func (s *Secp256k1Scalar) ActOnBase() Point {
	out := new(Secp256k1Point)
	secp256k1.ScalarBaseMultNonConst(s.val(), &out.value)
	return out
}

func (s *Secp256k1Scalar) Zeroize() {
	if s != nil {
		s.value.Zero()
	}
}

// String implements fmt.Stringer.
func (s *Secp256k1Scalar) String() string {
	if s == nil {
		return "nil"
	}
	data := s.val().Bytes()
	return hex.EncodeToString(data[:])
}

// Secp256k1Point is a point of secp256k1, in Jacobian coordinates.
//
// The zero value is the identity.
type Secp256k1Point struct {
	value secp256k1.JacobianPoint
}

func secp256k1CastPoint(generic Point) *Secp256k1Point {
	out, ok := generic.(*Secp256k1Point)
	if !ok {
		panic(mismatch("point", "secp256k1", generic))
	}
	return out
}

// affine returns a normalized copy of p, leaving p untouched.
//
// The identity is mapped to (0, 0).
func (p *Secp256k1Point) affine() secp256k1.JacobianPoint {
	var out secp256k1.JacobianPoint
	out.Set(p.jac())
	out.ToAffine()
	return out
}

// jac returns the underlying value, with nil standing for the identity.
func (p *Secp256k1Point) jac() *secp256k1.JacobianPoint {
	if p == nil {
		return new(secp256k1.JacobianPoint)
	}
	return &p.value
}

func (*Secp256k1Point) Curve() Curve {
	return Secp256k1{}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Secp256k1Point) MarshalBinary() ([]byte, error) {
	if p.IsIdentity() {
		return nil, fmt.Errorf("%w: secp256k1 identity has no encoding", ErrInvalidEncoding)
	}
	a := p.affine()

	out := make([]byte, 33)
	// Choose the format byte depending on the oddness of the Y coordinate.
	out[0] = secp256k1.PubKeyFormatCompressedEven
	if a.Y.IsOdd() {
		out[0] = secp256k1.PubKeyFormatCompressedOdd
	}
	a.X.PutBytesUnchecked(out[1:33])
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Secp256k1Point) UnmarshalBinary(data []byte) error {
	if len(data) != 33 {
		return fmt.Errorf("%w: secp256k1 point must be 33 bytes, found %d", ErrInvalidEncoding, len(data))
	}
	format := data[0]
	if !(format == secp256k1.PubKeyFormatCompressedOdd || format == secp256k1.PubKeyFormatCompressedEven) {
		return fmt.Errorf("%w: secp256k1 point has format byte %#x", ErrInvalidEncoding, format)
	}

	var x, y secp256k1.FieldVal
	if overflow := x.SetByteSlice(data[1:33]); overflow {
		return fmt.Errorf("%w: secp256k1 point: x >= field prime", ErrInvalidEncoding)
	}
	// Attempt to calculate the y coordinate for the given x coordinate such
	// that the result pair is a point on the curve, with the desired oddness.
	if !secp256k1.DecompressY(&x, format == secp256k1.PubKeyFormatCompressedOdd, &y) {
		return fmt.Errorf("%w: secp256k1 point: x coordinate is not on the curve", ErrInvalidEncoding)
	}
	y.Normalize()
	p.value.X.Set(&x)
	p.value.Y.Set(&y)
	p.value.Z.SetInt(1)
	return nil
}

func (p *Secp256k1Point) Add(that Point) Point {
	other := secp256k1CastPoint(that)
	out := new(Secp256k1Point)
	secp256k1.AddNonConst(p.jac(), other.jac(), &out.value)
	return out
}

func (p *Secp256k1Point) Sub(that Point) Point {
	return p.Add(that.Negate())
}

func (p *Secp256k1Point) Negate() Point {
	out := new(Secp256k1Point)
	if p.IsIdentity() {
		return out
	}
	out.value = p.affine()
	out.value.Y.Negate(1)
	out.value.Y.Normalize()
	return out
}

func (p *Secp256k1Point) Equal(that Point) bool {
	other := secp256k1CastPoint(that)
	a, b := p.affine(), other.affine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

func (p *Secp256k1Point) IsIdentity() bool {
	a := p.affine()
	return a.X.IsZero() && a.Y.IsZero()
}

// String implements fmt.Stringer.
func (p *Secp256k1Point) String() string {
	if p == nil {
		return "nil"
	}
	if p.IsIdentity() {
		return "Point{Identity}"
	}
	data, _ := p.MarshalBinary()
	return hex.EncodeToString(data)
}
