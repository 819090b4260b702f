package schnorr

import (
	"fmt"
	"io"

	"github.com/stringhandler/tari-crypto/internal/hash"
	"github.com/stringhandler/tari-crypto/pkg/math/curve"
)

const challengeLabel = "tari-crypto/schnorr/challenge"

// challengeHash holds the state after absorbing the label, and is only ever cloned.
var challengeHash = hash.New(challengeLabel)

// messageHash wraps a message, so that it can be written to a transcript.
type messageHash []byte

func (m messageHash) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m)
	return int64(n), err
}

func (messageHash) Domain() string {
	return "message"
}

// point wraps a curve.Point, giving it a per curve domain.
type point struct {
	curve.Point
}

func (p point) WriteTo(w io.Writer) (int64, error) {
	data, err := p.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (p point) Domain() string {
	return "curve.Point:" + p.Curve().Name()
}

// Challenge computes e = H(R, P, m), as a scalar of the group of P.
//
// R and P must belong to the same group, and must both be encodable.
func Challenge(R, P curve.Point, m []byte) (curve.Scalar, error) {
	group := P.Curve()
	if R.Curve().Name() != group.Name() {
		return nil, fmt.Errorf("schnorr.Challenge: %w: nonce point on %s, public key on %s",
			curve.ErrInvalidOperand, R.Curve().Name(), group.Name())
	}
	h := challengeHash.Clone()
	if err := h.WriteAny(point{R}, point{P}, messageHash(m)); err != nil {
		return nil, fmt.Errorf("schnorr.Challenge: %w", err)
	}
	return curve.FromUniform(group, h.Sum()), nil
}
