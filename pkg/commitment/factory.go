// Package commitment implements Pedersen commitments, and their extended variant
// with several blinding factors.
//
// A commitment to a value v with blinding factors k_0, …, k_j is
//
//	C = v·H + k_0·G_0 + … + k_j·G_j,
//
// where G_0 is the base point of the group, and H, G_1, … are points
// derived by hashing, whose discrete logarithms are unknown.
package commitment

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cronokirby/saferith"

	"github.com/stringhandler/tari-crypto/pkg/math/curve"
)

// MaxExtensionDegree is the largest number of extra blinding generators a Factory supports.
const MaxExtensionDegree = 6

const generatorLabel = "tari-crypto/commitment/"

// ErrExtensionDegree is returned when the extension degree, or the number of
// blinding factors, is out of range.
var ErrExtensionDegree = errors.New("commitment: invalid extension degree")

// Factory creates and opens commitments over a fixed set of generators.
//
// A Factory is immutable, and can be shared between goroutines.
type Factory struct {
	group           curve.Curve
	h               curve.Point
	g               []curve.Point
	extensionDegree int
}

// NewFactory creates a Factory over group, with extensionDegree additional blinding generators.
//
// Blinding factors are secret, so group must multiply in constant time,
// otherwise curve.ErrInvalidOperand is returned.
func NewFactory(group curve.Curve, extensionDegree int) (*Factory, error) {
	if extensionDegree < 0 || extensionDegree > MaxExtensionDegree {
		return nil, fmt.Errorf("%w: %d is not in [0, %d]", ErrExtensionDegree, extensionDegree, MaxExtensionDegree)
	}
	if err := curve.RequireConstantTime(group); err != nil {
		return nil, fmt.Errorf("commitment.NewFactory: %w", err)
	}
	base := group.NewBasePoint()
	baseBytes, err := base.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("commitment.NewFactory: %w", err)
	}
	g := make([]curve.Point, 0, extensionDegree+1)
	g = append(g, base)
	for i := 1; i <= extensionDegree; i++ {
		g = append(g, group.HashToPoint(generatorInput("G"+strconv.Itoa(i), baseBytes)))
	}
	return &Factory{
		group:           group,
		h:               group.HashToPoint(generatorInput("H", baseBytes)),
		g:               g,
		extensionDegree: extensionDegree,
	}, nil
}

func generatorInput(name string, base []byte) []byte {
	out := make([]byte, 0, len(generatorLabel)+len(name)+len(base))
	out = append(out, generatorLabel...)
	out = append(out, name...)
	return append(out, base...)
}

// Curve returns the group of the commitments.
func (f *Factory) Curve() curve.Curve { return f.group }

// ExtensionDegree returns the number of additional blinding generators.
func (f *Factory) ExtensionDegree() int { return f.extensionDegree }

// H returns the value generator.
func (f *Factory) H() curve.Point { return f.h }

// G returns the i-th blinding generator, with G(0) the base point.
func (f *Factory) G(i int) curve.Point { return f.g[i] }

// Commit returns v·H + k·G_0.
func (f *Factory) Commit(k, v curve.Scalar) *Commitment {
	return &Commitment{point: v.Act(f.h).Add(k.ActOnBase())}
}

// CommitValue commits to an integer value.
func (f *Factory) CommitValue(k curve.Scalar, value uint64) *Commitment {
	return f.Commit(k, f.valueScalar(value))
}

// Open checks that c is a commitment to v with blinding factor k.
func (f *Factory) Open(k, v curve.Scalar, c *Commitment) bool {
	return c.Equal(f.Commit(k, v))
}

// OpenValue checks that c is a commitment to an integer value with blinding factor k.
func (f *Factory) OpenValue(k curve.Scalar, value uint64, c *Commitment) bool {
	return f.Open(k, f.valueScalar(value), c)
}

// Zero returns the commitment to 0 with blinding factor 0.
func (f *Factory) Zero() *Commitment {
	return &Commitment{point: f.group.NewPoint()}
}

// CommitExtended returns v·H + Σ kVec[i]·G_i.
//
// kVec must hold between 1 and ExtensionDegree()+1 blinding factors.
func (f *Factory) CommitExtended(kVec []curve.Scalar, v curve.Scalar) (*Commitment, error) {
	if len(kVec) == 0 || len(kVec) > f.extensionDegree+1 {
		return nil, fmt.Errorf("%w: %d blinding factors, expected between 1 and %d",
			ErrExtensionDegree, len(kVec), f.extensionDegree+1)
	}
	point := v.Act(f.h)
	for i, k := range kVec {
		point = point.Add(k.Act(f.g[i]))
	}
	return &Commitment{point: point}, nil
}

// OpenExtended checks that c is an extended commitment to v with blinding factors kVec.
func (f *Factory) OpenExtended(kVec []curve.Scalar, v curve.Scalar, c *Commitment) (bool, error) {
	expected, err := f.CommitExtended(kVec, v)
	if err != nil {
		return false, err
	}
	return c.Equal(expected), nil
}

// CommitValueExtended is CommitExtended for an integer value.
func (f *Factory) CommitValueExtended(kVec []curve.Scalar, value uint64) (*Commitment, error) {
	return f.CommitExtended(kVec, f.valueScalar(value))
}

// OpenValueExtended is OpenExtended for an integer value.
func (f *Factory) OpenValueExtended(kVec []curve.Scalar, value uint64, c *Commitment) (bool, error) {
	return f.OpenExtended(kVec, f.valueScalar(value), c)
}

func (f *Factory) valueScalar(value uint64) curve.Scalar {
	return f.group.NewScalar().SetNat(new(saferith.Nat).SetUint64(value))
}
