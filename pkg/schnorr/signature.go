package schnorr

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/stringhandler/tari-crypto/pkg/math/curve"
)

// Signature represents a Schnorr signature (R, s).
type Signature struct {
	// R is the nonce commitment r·G.
	R curve.Point
	// S is the response r + e·k.
	S curve.Scalar
}

// EmptySignature returns a Signature of group, ready to be decoded into.
func EmptySignature(group curve.Curve) *Signature {
	return &Signature{R: group.NewPoint(), S: group.NewScalar()}
}

// Curve returns the group of this signature.
func (sig *Signature) Curve() curve.Curve {
	return sig.R.Curve()
}

// Verify checks that sig is a valid signature of m under public.
//
// Malformed or mismatched inputs result in false.
func (sig *Signature) Verify(public curve.Point, m []byte) bool {
	return Verify(public, m, sig)
}

// Verify checks that sig is a valid signature of m under public, that is
//
//	s·G = R + H(R, P, m)·P.
//
// Verify never panics on well typed inputs, and never returns an error:
// anything which isn't a valid signature is reported as false.
func Verify(public curve.Point, m []byte, sig *Signature) bool {
	if public == nil || sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	group := public.Curve()
	if sig.R.Curve().Name() != group.Name() || sig.S.Curve().Name() != group.Name() {
		return false
	}
	if public.IsIdentity() || sig.R.IsIdentity() {
		return false
	}
	e, err := Challenge(sig.R, public, m)
	if err != nil {
		return false
	}
	// s·G - e·P == R
	return curve.DoubleMulVarTime(e.Negate(), public, sig.S).Equal(sig.R)
}

// VerifyBinary decodes an encoded public key and signature of group, and verifies them.
//
// Decoding errors are absorbed into false.
func VerifyBinary(group curve.Curve, public, m, sig []byte) bool {
	P, err := ParsePublicKey(group, public)
	if err != nil {
		return false
	}
	s := EmptySignature(group)
	if err := s.UnmarshalBinary(sig); err != nil {
		return false
	}
	return Verify(P, m, s)
}

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The encoding is R || s, using the fixed width encodings of the curve.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	R, err := sig.R.MarshalBinary()
	if err != nil {
		return nil, err
	}
	s, err := sig.S.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(R, s...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The receiver must have been created with EmptySignature, so that the curve is known.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	if sig.R == nil {
		return fmt.Errorf("schnorr.Signature: unknown curve")
	}
	group := sig.R.Curve()
	pointBytes := group.PointBytes()
	if len(data) != pointBytes+group.ScalarBytes() {
		return fmt.Errorf("schnorr.Signature: %w: length %d", curve.ErrInvalidEncoding, len(data))
	}
	R, S := group.NewPoint(), group.NewScalar()
	if err := R.UnmarshalBinary(data[:pointBytes]); err != nil {
		return fmt.Errorf("schnorr.Signature: R: %w", err)
	}
	if err := S.UnmarshalBinary(data[pointBytes:]); err != nil {
		return fmt.Errorf("schnorr.Signature: s: %w", err)
	}
	sig.R, sig.S = R, S
	return nil
}

type signatureCBOR struct {
	R *curve.MarshallablePoint
	S *curve.MarshallableScalar
}

// MarshalCBOR implements cbor.Marshaler.
func (sig *Signature) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(&signatureCBOR{
		R: curve.NewMarshallablePoint(sig.R),
		S: curve.NewMarshallableScalar(sig.S),
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (sig *Signature) UnmarshalCBOR(data []byte) error {
	var s signatureCBOR
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	if s.R == nil || s.S == nil {
		return fmt.Errorf("schnorr.Signature: %w: missing field", curve.ErrInvalidEncoding)
	}
	if s.R.Point.Curve().Name() != s.S.Scalar.Curve().Name() {
		return fmt.Errorf("schnorr.Signature: %w: mixed curves", curve.ErrInvalidEncoding)
	}
	sig.R, sig.S = s.R.Point, s.S.Scalar
	return nil
}
