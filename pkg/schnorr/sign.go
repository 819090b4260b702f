package schnorr

import (
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/stringhandler/tari-crypto/internal/params"
	"github.com/stringhandler/tari-crypto/pkg/math/curve"
	"github.com/stringhandler/tari-crypto/pkg/math/sample"
)

const nonceLabel = "tari-crypto/schnorr/nonce"

// maxNonceAttempts bounds the number of zero nonces we skip over, which
// for a correct hash function never happens.
const maxNonceAttempts = 256

// Sign creates a signature of m under private, using rand for the hedged nonce.
//
// A nil or failing rand results in an error wrapping sample.ErrEntropyUnavailable,
// and no signature is produced. A zero or nil private key results in ErrInvalidPrivateKey.
// A private key on a curve without constant time scalar multiplication results
// in curve.ErrInvalidOperand.
func Sign(rand io.Reader, private curve.Scalar, m []byte) (*Signature, error) {
	if err := validatePrivate(private); err != nil {
		return nil, err
	}
	return sign(rand, private, private.ActOnBase(), m)
}

// SignDeterministic creates a signature of m under private, deriving the nonce
// from the private key and the message only.
//
// Signing the same message twice produces the same signature.
func SignDeterministic(private curve.Scalar, m []byte) (*Signature, error) {
	if err := validatePrivate(private); err != nil {
		return nil, err
	}
	return signWithAux(make([]byte, params.SecBytes), private, private.ActOnBase(), m)
}

func sign(rand io.Reader, private curve.Scalar, public curve.Point, m []byte) (*Signature, error) {
	if err := validatePrivate(private); err != nil {
		return nil, err
	}
	if rand == nil {
		return nil, fmt.Errorf("schnorr.Sign: %w: no source of randomness", sample.ErrEntropyUnavailable)
	}
	aux := make([]byte, params.SecBytes)
	if _, err := io.ReadFull(rand, aux); err != nil {
		return nil, fmt.Errorf("schnorr.Sign: %w: %v", sample.ErrEntropyUnavailable, err)
	}
	return signWithAux(aux, private, public, m)
}

func signWithAux(aux []byte, private curve.Scalar, public curve.Point, m []byte) (*Signature, error) {
	nonce, err := deriveNonce(aux, private, public, m)
	if err != nil {
		return nil, err
	}
	defer nonce.Zeroize()

	R := nonce.ActOnBase()
	e, err := Challenge(R, public, m)
	if err != nil {
		return nil, err
	}
	s := nonce.Add(e.Mul(private))
	return &Signature{R: R, S: s}, nil
}

// deriveNonce computes r = BLAKE2b-512_k(label || ctr || aux || P || m) mod q,
// skipping over the (negligible) zero values.
func deriveNonce(aux []byte, private curve.Scalar, public curve.Point, m []byte) (curve.Scalar, error) {
	key, err := private.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("schnorr: %w: %w", ErrInvalidPrivateKey, err)
	}
	defer clear(key)
	publicBytes, err := public.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("schnorr: public key: %w", err)
	}

	out := make([]byte, 0, blake2b.Size)
	defer func() { clear(out[:cap(out)]) }()
	for ctr := 0; ctr < maxNonceAttempts; ctr++ {
		h, err := blake2b.New512(key)
		if err != nil {
			return nil, fmt.Errorf("schnorr: %w", err)
		}
		_, _ = h.Write([]byte(nonceLabel))
		_, _ = h.Write([]byte{byte(ctr)})
		_, _ = h.Write(aux)
		_, _ = h.Write(publicBytes)
		_, _ = h.Write(m)
		out = h.Sum(out[:0])
		nonce := curve.FromUniform(private.Curve(), out)
		if !nonce.IsZero() {
			return nonce, nil
		}
	}
	return nil, fmt.Errorf("schnorr: %w: could not derive a nonce", curve.ErrInvalidOperand)
}
