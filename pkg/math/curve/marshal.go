package curve

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// FromName returns the Curve registered under name.
func FromName(name string) (Curve, error) {
	switch name {
	case Ristretto255{}.Name():
		return Ristretto255{}, nil
	case Secp256k1{}.Name():
		return Secp256k1{}, nil
	default:
		return nil, fmt.Errorf("curve: unknown curve %q", name)
	}
}

// MarshallableScalar wraps a Scalar, so that it can be encoded along with its Curve.
//
// This is useful when the curve isn't known in advance by the decoder.
type MarshallableScalar struct {
	Scalar Scalar
}

// NewMarshallableScalar wraps a Scalar.
func NewMarshallableScalar(scalar Scalar) *MarshallableScalar {
	return &MarshallableScalar{Scalar: scalar}
}

type marshallableScalar struct {
	Group string
	Data  []byte
}

// MarshalCBOR implements cbor.Marshaler.
func (s *MarshallableScalar) MarshalCBOR() ([]byte, error) {
	data, err := s.Scalar.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&marshallableScalar{s.Scalar.Curve().Name(), data})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (s *MarshallableScalar) UnmarshalCBOR(data []byte) error {
	var ms marshallableScalar
	if err := cbor.Unmarshal(data, &ms); err != nil {
		return err
	}
	group, err := FromName(ms.Group)
	if err != nil {
		return err
	}
	scalar := group.NewScalar()
	if err := scalar.UnmarshalBinary(ms.Data); err != nil {
		return err
	}
	s.Scalar = scalar
	return nil
}

// MarshallablePoint wraps a Point, so that it can be encoded along with its Curve.
type MarshallablePoint struct {
	Point Point
}

// NewMarshallablePoint wraps a Point.
func NewMarshallablePoint(point Point) *MarshallablePoint {
	return &MarshallablePoint{Point: point}
}

type marshallablePoint struct {
	Group string
	Data  []byte
}

// MarshalCBOR implements cbor.Marshaler.
func (p *MarshallablePoint) MarshalCBOR() ([]byte, error) {
	data, err := p.Point.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&marshallablePoint{p.Point.Curve().Name(), data})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (p *MarshallablePoint) UnmarshalCBOR(data []byte) error {
	var mp marshallablePoint
	if err := cbor.Unmarshal(data, &mp); err != nil {
		return err
	}
	group, err := FromName(mp.Group)
	if err != nil {
		return err
	}
	point := group.NewPoint()
	if err := point.UnmarshalBinary(mp.Data); err != nil {
		return err
	}
	p.Point = point
	return nil
}
