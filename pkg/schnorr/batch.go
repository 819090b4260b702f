package schnorr

import (
	"fmt"
	"io"

	"github.com/stringhandler/tari-crypto/pkg/math/curve"
	"github.com/stringhandler/tari-crypto/pkg/math/sample"
	"github.com/stringhandler/tari-crypto/pkg/pool"
)

// Entry is a message, along with a signature of it, and the key it should verify under.
type Entry struct {
	Public    curve.Point
	Message   []byte
	Signature *Signature
}

// VerifyAll verifies each entry on its own, using pl to spread the work.
//
// results[i] is Verify(entries[i].Public, entries[i].Message, entries[i].Signature).
// A nil pool verifies on the calling goroutine.
func VerifyAll(pl *pool.Pool, entries []Entry) []bool {
	results := make([]bool, len(entries))
	pl.Parallelize(len(entries), func(i int) {
		e := entries[i]
		results[i] = Verify(e.Public, e.Message, e.Signature)
	})
	return results
}

// GenerateKeys creates count key pairs of group, using pl to spread the work.
//
// rand is shared between the workers through a pool.LockedReader. If any read
// fails, the first error is returned, and every generated key is zeroized.
func GenerateKeys(pl *pool.Pool, rand io.Reader, group curve.Curve, count int) ([]*KeyPair, error) {
	if count < 0 {
		return nil, fmt.Errorf("schnorr.GenerateKeys: %w: negative count %d", curve.ErrInvalidOperand, count)
	}
	if err := curve.RequireConstantTime(group); err != nil {
		return nil, fmt.Errorf("schnorr.GenerateKeys: %w", err)
	}
	if rand == nil {
		return nil, fmt.Errorf("schnorr.GenerateKeys: %w: no source of randomness", sample.ErrEntropyUnavailable)
	}
	r := pool.NewLockedReader(rand)
	keys := make([]*KeyPair, count)
	errs := make([]error, count)
	pl.Parallelize(count, func(i int) {
		keys[i], errs[i] = GenerateKey(r, group)
	})
	for _, err := range errs {
		if err != nil {
			for _, kp := range keys {
				if kp != nil {
					kp.Zeroize()
				}
			}
			return nil, err
		}
	}
	return keys, nil
}
