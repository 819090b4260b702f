package commitment

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/stringhandler/tari-crypto/pkg/math/curve"
)

// Commitment is a Pedersen commitment, a point of the Factory's group.
//
// Commitments are additively homomorphic:
//
//	Commit(k1, v1) + Commit(k2, v2) = Commit(k1 + k2, v1 + v2).
type Commitment struct {
	point curve.Point
}

// New wraps a point as a commitment.
func New(point curve.Point) *Commitment {
	return &Commitment{point: point}
}

// Empty returns a Commitment of group, ready to be decoded into.
func Empty(group curve.Curve) *Commitment {
	return &Commitment{point: group.NewPoint()}
}

// Point returns the underlying group element.
func (c *Commitment) Point() curve.Point {
	return c.point
}

// Add returns c + other.
func (c *Commitment) Add(other *Commitment) *Commitment {
	return &Commitment{point: c.point.Add(other.point)}
}

// Sub returns c - other.
func (c *Commitment) Sub(other *Commitment) *Commitment {
	return &Commitment{point: c.point.Sub(other.point)}
}

// Equal compares two commitments.
//
// Commitments of different curves are never equal.
func (c *Commitment) Equal(other *Commitment) bool {
	if c == nil || other == nil || c.point == nil || other.point == nil {
		return false
	}
	if c.point.Curve().Name() != other.point.Curve().Name() {
		return false
	}
	return c.point.Equal(other.point)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Commitment) MarshalBinary() ([]byte, error) {
	return c.point.MarshalBinary()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The receiver must have been created with Empty, so that the curve is known.
func (c *Commitment) UnmarshalBinary(data []byte) error {
	if c.point == nil {
		return fmt.Errorf("commitment: unknown curve")
	}
	point := c.point.Curve().NewPoint()
	if err := point.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("commitment: %w", err)
	}
	c.point = point
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (c *Commitment) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(curve.NewMarshallablePoint(c.point))
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (c *Commitment) UnmarshalCBOR(data []byte) error {
	var p curve.MarshallablePoint
	if err := cbor.Unmarshal(data, &p); err != nil {
		return err
	}
	c.point = p.Point
	return nil
}
