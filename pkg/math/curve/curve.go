package curve

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
)

var (
	// ErrInvalidOperand is returned when an arithmetic operation receives a value
	// outside of its domain, e.g. inverting zero.
	ErrInvalidOperand = errors.New("curve: invalid operand")
	// ErrInvalidEncoding is returned when bytes do not decode to a canonical
	// scalar or to a valid point of the group.
	ErrInvalidEncoding = errors.New("curve: invalid encoding")
)

// Curve represents a prime order group, with a distinguished generator.
//
// All the values created by a Curve are tied to it; mixing scalars or points
// from different curves is a programming error, and will panic.
type Curve interface {
	// NewPoint returns the identity element.
	NewPoint() Point
	// NewBasePoint returns the generator of the group.
	NewBasePoint() Point
	// NewScalar returns the scalar 0.
	NewScalar() Scalar
	// Name returns a stable identifier for this curve.
	Name() string
	// ScalarBytes is the length of the canonical encoding of a scalar.
	ScalarBytes() int
	// PointBytes is the length of the canonical encoding of a point.
	PointBytes() int
	// Order returns the order of the group.
	Order() *saferith.Modulus
	// HashToPoint maps arbitrary bytes to a point whose discrete log relative
	// to any other point is unknown.
	HashToPoint(data []byte) Point
	// ConstantTime reports whether Scalar.Act and Scalar.ActOnBase run in
	// constant time with respect to the scalar.
	//
	// Only such curves may be used with secret scalars.
	ConstantTime() bool
}

// Scalar represents an integer modulo the order of a Curve.
//
// Scalars are immutable: arithmetic methods return a fresh Scalar,
// and leave both operands untouched.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	// Invert returns the multiplicative inverse, or ErrInvalidOperand for 0.
	Invert() (Scalar, error)
	// Equal runs in constant time.
	Equal(Scalar) bool
	IsZero() bool
	// SetNat sets the scalar to x mod Order, and returns it.
	//
	// This is the only method which modifies its receiver, and should only
	// be used on a freshly created scalar.
	SetNat(x *saferith.Nat) Scalar
	// Act computes s·P.
	//
	// This is constant time with respect to the scalar, when the backend allows it.
	Act(Point) Point
	// ActOnBase computes s·G.
	ActOnBase() Point
	// Zeroize overwrites the value of the scalar with 0.
	Zeroize()
}

// Point represents an element of a Curve.
//
// Points are immutable: arithmetic methods return a fresh Point.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Equal(Point) bool
	IsIdentity() bool
}

// FromUniform reduces a byte string modulo the order of group.
//
// The bytes are interpreted as a big endian integer.
// Callers should provide at least params.UniformBytes bytes,
// so that the result is indistinguishable from a uniform scalar.
func FromUniform(group Curve, b []byte) Scalar {
	n := new(saferith.Nat).SetBytes(b)
	return group.NewScalar().SetNat(n)
}

// RequireConstantTime returns ErrInvalidOperand if group can't multiply
// secret scalars in constant time.
func RequireConstantTime(group Curve) error {
	if !group.ConstantTime() {
		return fmt.Errorf("%w: %s scalar multiplication is not constant time", ErrInvalidOperand, group.Name())
	}
	return nil
}

// DoubleMulVarTime computes a·P + b·G.
//
// This isn't constant time, and must only be used with public inputs.
func DoubleMulVarTime(a Scalar, P Point, b Scalar) Point {
	if d, ok := a.(doubleMuler); ok {
		return d.doubleMulVarTime(P, b)
	}
	return a.Act(P).Add(b.ActOnBase())
}

type doubleMuler interface {
	doubleMulVarTime(P Point, b Scalar) Point
}

func mismatch(kind string, curve string, v interface{}) string {
	return fmt.Sprintf("curve: expected %s %s, found %T", curve, kind, v)
}
