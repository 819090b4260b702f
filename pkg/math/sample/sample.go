package sample

import (
	"errors"
	"fmt"
	"io"

	"github.com/stringhandler/tari-crypto/internal/params"
	"github.com/stringhandler/tari-crypto/pkg/math/curve"
)

// maxIterations is the number of zero scalars we tolerate before giving up on a source.
//
// A healthy source produces a zero scalar with probability about 2⁻²⁵², so hitting
// this bound means the source is broken.
const maxIterations = 16

// ErrEntropyUnavailable is returned when the source of randomness fails.
var ErrEntropyUnavailable = errors.New("sample: entropy unavailable")

// Scalar returns a uniformly random non-zero scalar of group, read from rand.
//
// Errors from rand are never retried, and are reported as ErrEntropyUnavailable.
func Scalar(rand io.Reader, group curve.Curve) (curve.Scalar, error) {
	if rand == nil {
		return nil, fmt.Errorf("%w: no source of randomness", ErrEntropyUnavailable)
	}
	buf := make([]byte, params.UniformBytes)
	defer clear(buf)
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
		}
		s := curve.FromUniform(group, buf)
		if !s.IsZero() {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: sampled zero %d times", ErrEntropyUnavailable, maxIterations)
}

// ScalarPointPair returns a random non-zero scalar x, along with X = x·G.
//
// Since x is secret, group must multiply in constant time, otherwise
// curve.ErrInvalidOperand is returned.
func ScalarPointPair(rand io.Reader, group curve.Curve) (curve.Scalar, curve.Point, error) {
	if err := curve.RequireConstantTime(group); err != nil {
		return nil, nil, err
	}
	s, err := Scalar(rand, group)
	if err != nil {
		return nil, nil, err
	}
	return s, s.ActOnBase(), nil
}
