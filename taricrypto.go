package taricrypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/stringhandler/tari-crypto/internal/params"
	"github.com/stringhandler/tari-crypto/pkg/math/curve"
	"github.com/stringhandler/tari-crypto/pkg/math/sample"
	"github.com/stringhandler/tari-crypto/pkg/schnorr"
)

// KeyLength is the length in bytes of private keys, public keys, and signature halves.
const KeyLength = params.KeyLength

const version = "0.1.0"

var (
	// ErrEntropyUnavailable is returned when the operating system's source of randomness fails.
	ErrEntropyUnavailable = sample.ErrEntropyUnavailable
	// ErrInvalidPrivateKey is returned when a private key is zero or not a canonical scalar.
	ErrInvalidPrivateKey = schnorr.ErrInvalidPrivateKey
	// ErrInvalidEncoding is returned when bytes are not the encoding of a scalar or point.
	ErrInvalidEncoding = curve.ErrInvalidEncoding
	// ErrInvalidOperand is returned by arithmetic on values outside of their domain.
	ErrInvalidOperand = curve.ErrInvalidOperand
)

var group = curve.Ristretto255{}

// Version returns the version of this library.
func Version() string {
	return version
}

// RandomKeypair creates a new key pair, using crypto/rand.
//
// The public key is the encoding of k·G, for the private scalar k.
func RandomKeypair() (privateKey, publicKey [KeyLength]byte, err error) {
	return randomKeypair(rand.Reader)
}

func randomKeypair(rand io.Reader) (privateKey, publicKey [KeyLength]byte, err error) {
	kp, err := schnorr.GenerateKey(rand, group)
	if err != nil {
		return privateKey, publicKey, err
	}
	defer kp.Zeroize()
	if err = encode(privateKey[:], kp.Private); err != nil {
		return privateKey, publicKey, err
	}
	if err = encode(publicKey[:], kp.Public); err != nil {
		Zeroize(&privateKey)
		return privateKey, publicKey, err
	}
	return privateKey, publicKey, nil
}

// Sign creates a signature (r, s) of msg under privateKey, using crypto/rand for the nonce.
//
// Each call uses a fresh nonce, so signing the same message twice gives different results.
func Sign(privateKey *[KeyLength]byte, msg []byte) (r, s [KeyLength]byte, err error) {
	return sign(rand.Reader, privateKey, msg)
}

func sign(rand io.Reader, privateKey *[KeyLength]byte, msg []byte) (r, s [KeyLength]byte, err error) {
	if privateKey == nil {
		return r, s, fmt.Errorf("%w: nil", ErrInvalidPrivateKey)
	}
	kp, err := schnorr.ParsePrivateKey(group, privateKey[:])
	if err != nil {
		return r, s, err
	}
	defer kp.Zeroize()

	sig, err := kp.Sign(rand, msg)
	if err != nil {
		return r, s, err
	}
	if err = encode(r[:], sig.R); err != nil {
		return r, s, err
	}
	if err = encode(s[:], sig.S); err != nil {
		return r, s, err
	}
	return r, s, nil
}

// Verify reports whether (r, s) is a valid signature of msg under publicKey.
//
// Anything that doesn't decode, including nil arguments, results in false.
func Verify(publicKey *[KeyLength]byte, msg []byte, r, s *[KeyLength]byte) bool {
	if publicKey == nil || r == nil || s == nil {
		return false
	}
	sig := make([]byte, 0, 2*KeyLength)
	sig = append(sig, r[:]...)
	sig = append(sig, s[:]...)
	return schnorr.VerifyBinary(group, publicKey[:], msg, sig)
}

// Zeroize clears a private key.
func Zeroize(key *[KeyLength]byte) {
	if key != nil {
		clear(key[:])
	}
}

func encode(dst []byte, v interface{ MarshalBinary() ([]byte, error) }) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	defer clear(data)
	if len(data) != len(dst) {
		return fmt.Errorf("%w: expected %d bytes, found %d", ErrInvalidEncoding, len(dst), len(data))
	}
	copy(dst, data)
	return nil
}
