// Package dhke computes Diffie-Hellman shared secrets between a private scalar and a public point.
package dhke

import (
	"errors"
	"fmt"

	"github.com/stringhandler/tari-crypto/pkg/math/curve"
)

// ErrInvalidKey is returned when one side of the exchange is unusable.
var ErrInvalidKey = errors.New("dhke: invalid key")

// SharedSecret is the encoding of sk·pk.
//
// It is secret material, and should be cleared with Zeroize once used.
type SharedSecret struct {
	data []byte
}

// New computes the shared secret sk·pk.
//
// sk must be non zero, and pk must be a point of the same curve other than the identity.
// The curve must multiply in constant time, otherwise curve.ErrInvalidOperand is returned.
func New(sk curve.Scalar, pk curve.Point) (*SharedSecret, error) {
	if sk == nil || sk.IsZero() {
		return nil, fmt.Errorf("%w: zero secret key", ErrInvalidKey)
	}
	if pk == nil || pk.IsIdentity() {
		return nil, fmt.Errorf("%w: identity public key", ErrInvalidKey)
	}
	if sk.Curve().Name() != pk.Curve().Name() {
		return nil, fmt.Errorf("%w: secret key on %s, public key on %s", ErrInvalidKey, sk.Curve().Name(), pk.Curve().Name())
	}
	if err := curve.RequireConstantTime(sk.Curve()); err != nil {
		return nil, fmt.Errorf("dhke.New: %w", err)
	}
	data, err := sk.Act(pk).MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("dhke.New: %w", err)
	}
	return &SharedSecret{data: data}, nil
}

// Bytes returns the encoded shared point.
//
// The returned slice aliases the secret, and is cleared by Zeroize.
func (s *SharedSecret) Bytes() []byte {
	return s.data
}

// Zeroize overwrites the secret.
func (s *SharedSecret) Zeroize() {
	clear(s.data)
}
