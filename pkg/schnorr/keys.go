package schnorr

import (
	"errors"
	"fmt"
	"io"

	"github.com/stringhandler/tari-crypto/pkg/math/curve"
	"github.com/stringhandler/tari-crypto/pkg/math/sample"
)

// ErrInvalidPrivateKey is returned when a private key is zero or not a canonical scalar.
var ErrInvalidPrivateKey = errors.New("schnorr: invalid private key")

// KeyPair holds a private scalar k, and the public point P = k·G.
//
// The owner of a KeyPair must call Zeroize once it is no longer needed,
// and must not use the KeyPair concurrently with Zeroize.
type KeyPair struct {
	// Private is the secret scalar k.
	Private curve.Scalar
	// Public is k·G.
	Public curve.Point
}

// GenerateKey creates a new KeyPair for group, using rand as the source of randomness.
//
// Reader failures wrap sample.ErrEntropyUnavailable. Curves without constant
// time scalar multiplication are rejected with curve.ErrInvalidOperand.
func GenerateKey(rand io.Reader, group curve.Curve) (*KeyPair, error) {
	private, public, err := sample.ScalarPointPair(rand, group)
	if err != nil {
		return nil, fmt.Errorf("schnorr.GenerateKey: %w", err)
	}
	return &KeyPair{Private: private, Public: public}, nil
}

// NewKeyPair derives the KeyPair corresponding to a private scalar.
//
// The scalar must belong to a curve with constant time scalar multiplication.
func NewKeyPair(private curve.Scalar) (*KeyPair, error) {
	if err := validatePrivate(private); err != nil {
		return nil, err
	}
	return &KeyPair{Private: private, Public: private.ActOnBase()}, nil
}

// ParsePrivateKey decodes a private scalar of group, and derives its KeyPair.
//
// Non canonical encodings are rejected, rather than reduced.
func ParsePrivateKey(group curve.Curve, data []byte) (*KeyPair, error) {
	private := group.NewScalar()
	if err := private.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	return NewKeyPair(private)
}

// ParsePublicKey decodes a public point of group.
//
// The identity is rejected, since it can't be the public key of a non zero scalar.
func ParsePublicKey(group curve.Curve, data []byte) (curve.Point, error) {
	public := group.NewPoint()
	if err := public.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("schnorr.ParsePublicKey: %w", err)
	}
	if public.IsIdentity() {
		return nil, fmt.Errorf("schnorr.ParsePublicKey: %w: identity", curve.ErrInvalidEncoding)
	}
	return public, nil
}

// Curve returns the group of this key pair.
func (kp *KeyPair) Curve() curve.Curve {
	return kp.Public.Curve()
}

// Sign signs m with the private key. See Sign.
func (kp *KeyPair) Sign(rand io.Reader, m []byte) (*Signature, error) {
	return sign(rand, kp.Private, kp.Public, m)
}

// Zeroize overwrites the private scalar.
//
// The KeyPair can no longer be used for signing afterwards.
func (kp *KeyPair) Zeroize() {
	if kp.Private != nil {
		kp.Private.Zeroize()
	}
}

func validatePrivate(private curve.Scalar) error {
	if private == nil {
		return fmt.Errorf("%w: nil", ErrInvalidPrivateKey)
	}
	if private.IsZero() {
		return fmt.Errorf("%w: zero", ErrInvalidPrivateKey)
	}
	return curve.RequireConstantTime(private.Curve())
}
