package curve

import (
	"encoding/hex"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/gtank/ristretto255"
	"golang.org/x/crypto/sha3"
)

// ristretto255Order is ℓ = 2²⁵² + 27742317777372353535851937790883648493.
var ristretto255Order = saferith.ModulusFromBytes([]byte{
	0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x14, 0xde, 0xf9, 0xde, 0xa2, 0xf7, 0x9c, 0xd6,
	0x58, 0x12, 0x63, 0x1a, 0x5c, 0xf5, 0xd3, 0xed,
})

// Ristretto255 is the prime order group built over Curve25519.
//
// Scalars are encoded as 32 bytes in little endian order, and points use the
// canonical 32 byte ristretto255 encoding. Since the group has prime order,
// every point which decodes successfully is a valid group element.
type Ristretto255 struct{}

func (Ristretto255) NewPoint() Point {
	return &Ristretto255Point{value: ristretto255.NewIdentityElement()}
}

func (Ristretto255) NewBasePoint() Point {
	one := make([]byte, 32)
	one[0] = 1
	s, _ := ristretto255.NewScalar().SetCanonicalBytes(one)
	return &Ristretto255Point{value: ristretto255.NewIdentityElement().ScalarBaseMult(s)}
}

func (Ristretto255) NewScalar() Scalar {
	return &Ristretto255Scalar{value: ristretto255.NewScalar()}
}

func (Ristretto255) Name() string {
	return "ristretto255"
}

func (Ristretto255) ScalarBytes() int {
	return 32
}

func (Ristretto255) PointBytes() int {
	return 32
}

func (Ristretto255) ConstantTime() bool {
	return true
}

func (Ristretto255) Order() *saferith.Modulus {
	return ristretto255Order
}

// HashToPoint uses the ristretto255 one-way map on the SHA3-512 digest of data.
func (Ristretto255) HashToPoint(data []byte) Point {
	digest := sha3.Sum512(data)
	e, err := ristretto255.NewIdentityElement().SetUniformBytes(digest[:])
	if err != nil {
		panic(fmt.Sprintf("curve.Ristretto255.HashToPoint: %v", err))
	}
	return &Ristretto255Point{value: e}
}

// Ristretto255Scalar is an integer modulo ℓ.
type Ristretto255Scalar struct {
	value *ristretto255.Scalar
}

func ristretto255CastScalar(generic Scalar) *Ristretto255Scalar {
	out, ok := generic.(*Ristretto255Scalar)
	if !ok {
		panic(mismatch("scalar", "ristretto255", generic))
	}
	return out
}

// get returns the underlying value, with nil standing for 0.
func (s *Ristretto255Scalar) get() *ristretto255.Scalar {
	if s == nil || s.value == nil {
		return ristretto255.NewScalar()
	}
	return s.value
}

func (*Ristretto255Scalar) Curve() Curve {
	return Ristretto255{}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Ristretto255Scalar) MarshalBinary() ([]byte, error) {
	return s.get().Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// Only canonical encodings, of values strictly below ℓ, are accepted.
func (s *Ristretto255Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("%w: ristretto255 scalar must be 32 bytes, found %d", ErrInvalidEncoding, len(data))
	}
	v, err := ristretto255.NewScalar().SetCanonicalBytes(data)
	if err != nil {
		return fmt.Errorf("%w: ristretto255 scalar: %v", ErrInvalidEncoding, err)
	}
	s.value = v
	return nil
}

func (s *Ristretto255Scalar) Add(that Scalar) Scalar {
	other := ristretto255CastScalar(that)
	return &Ristretto255Scalar{value: ristretto255.NewScalar().Add(s.get(), other.get())}
}

func (s *Ristretto255Scalar) Sub(that Scalar) Scalar {
	other := ristretto255CastScalar(that)
	return &Ristretto255Scalar{value: ristretto255.NewScalar().Subtract(s.get(), other.get())}
}

func (s *Ristretto255Scalar) Mul(that Scalar) Scalar {
	other := ristretto255CastScalar(that)
	return &Ristretto255Scalar{value: ristretto255.NewScalar().Multiply(s.get(), other.get())}
}

func (s *Ristretto255Scalar) Negate() Scalar {
	return &Ristretto255Scalar{value: ristretto255.NewScalar().Negate(s.get())}
}

func (s *Ristretto255Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, fmt.Errorf("%w: inverse of zero", ErrInvalidOperand)
	}
	return &Ristretto255Scalar{value: ristretto255.NewScalar().Invert(s.get())}, nil
}

func (s *Ristretto255Scalar) Equal(that Scalar) bool {
	other := ristretto255CastScalar(that)
	return s.get().Equal(other.get()) == 1
}

func (s *Ristretto255Scalar) IsZero() bool {
	return s.get().Equal(ristretto255.NewScalar()) == 1
}

func (s *Ristretto255Scalar) SetNat(x *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(x, ristretto255Order)
	be := make([]byte, 32)
	reduced.FillBytes(be)
	le := make([]byte, 32)
	for i := range be {
		le[i] = be[31-i]
	}
	v, err := ristretto255.NewScalar().SetCanonicalBytes(le)
	if err != nil {
		panic(fmt.Sprintf("curve.Ristretto255Scalar.SetNat: reduced value is not canonical: %v", err))
	}
	s.value = v
	return s
}

func (s *Ristretto255Scalar) Act(that Point) Point {
	other := ristretto255CastPoint(that)
	return &Ristretto255Point{value: ristretto255.NewIdentityElement().ScalarMult(s.get(), other.get())}
}

func (s *Ristretto255Scalar) ActOnBase() Point {
	return &Ristretto255Point{value: ristretto255.NewIdentityElement().ScalarBaseMult(s.get())}
}

func (s *Ristretto255Scalar) doubleMulVarTime(P Point, b Scalar) Point {
	p := ristretto255CastPoint(P)
	other := ristretto255CastScalar(b)
	return &Ristretto255Point{
		value: ristretto255.NewIdentityElement().VarTimeDoubleScalarBaseMult(s.get(), p.get(), other.get()),
	}
}

func (s *Ristretto255Scalar) Zeroize() {
	if s != nil && s.value != nil {
		s.value.Zero()
	}
}

// String implements fmt.Stringer.
func (s *Ristretto255Scalar) String() string {
	if s == nil {
		return "nil"
	}
	return hex.EncodeToString(s.get().Bytes())
}

// Ristretto255Point is an element of the ristretto255 group.
type Ristretto255Point struct {
	value *ristretto255.Element
}

func ristretto255CastPoint(generic Point) *Ristretto255Point {
	out, ok := generic.(*Ristretto255Point)
	if !ok {
		panic(mismatch("point", "ristretto255", generic))
	}
	return out
}

// get returns the underlying value, with nil standing for the identity.
func (p *Ristretto255Point) get() *ristretto255.Element {
	if p == nil || p.value == nil {
		return ristretto255.NewIdentityElement()
	}
	return p.value
}

func (*Ristretto255Point) Curve() Curve {
	return Ristretto255{}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Ristretto255Point) MarshalBinary() ([]byte, error) {
	return p.get().Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// Only canonical encodings are accepted, which guarantees that
// MarshalBinary gives back data.
func (p *Ristretto255Point) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("%w: ristretto255 point must be 32 bytes, found %d", ErrInvalidEncoding, len(data))
	}
	e, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data)
	if err != nil {
		return fmt.Errorf("%w: ristretto255 point: %v", ErrInvalidEncoding, err)
	}
	p.value = e
	return nil
}

func (p *Ristretto255Point) Add(that Point) Point {
	other := ristretto255CastPoint(that)
	return &Ristretto255Point{value: ristretto255.NewIdentityElement().Add(p.get(), other.get())}
}

func (p *Ristretto255Point) Sub(that Point) Point {
	other := ristretto255CastPoint(that)
	return &Ristretto255Point{value: ristretto255.NewIdentityElement().Subtract(p.get(), other.get())}
}

func (p *Ristretto255Point) Negate() Point {
	return &Ristretto255Point{value: ristretto255.NewIdentityElement().Negate(p.get())}
}

func (p *Ristretto255Point) Equal(that Point) bool {
	other := ristretto255CastPoint(that)
	return p.get().Equal(other.get()) == 1
}

func (p *Ristretto255Point) IsIdentity() bool {
	return p.get().Equal(ristretto255.NewIdentityElement()) == 1
}

// String implements fmt.Stringer.
func (p *Ristretto255Point) String() string {
	if p == nil {
		return "nil"
	}
	return hex.EncodeToString(p.get().Bytes())
}
