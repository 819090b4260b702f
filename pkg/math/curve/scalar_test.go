package curve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_Arithmetic(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			a, b := randomScalar(t, group), randomScalar(t, group)
			aCopy := group.NewScalar()
			data, _ := a.MarshalBinary()
			require.NoError(t, aCopy.UnmarshalBinary(data))

			assert.True(t, a.Add(b).Sub(b).Equal(a), "a + b - b != a")
			assert.True(t, a.Add(a.Negate()).IsZero(), "a - a != 0")
			assert.True(t, a.Sub(b).Equal(a.Add(b.Negate())))
			assert.True(t, a.Mul(b).Equal(b.Mul(a)))
			assert.True(t, smallScalar(group, 3).Mul(smallScalar(group, 7)).Equal(smallScalar(group, 21)))
			assert.True(t, smallScalar(group, 1).Add(smallScalar(group, 1)).Equal(smallScalar(group, 2)))

			aInv, err := a.Invert()
			require.NoError(t, err)
			assert.True(t, a.Mul(aInv).Equal(smallScalar(group, 1)))

			// operands are left untouched
			assert.True(t, a.Equal(aCopy))
		})
	}
}

func TestScalar_InvertZero(t *testing.T) {
	for _, group := range curves {
		_, err := group.NewScalar().Invert()
		assert.True(t, errors.Is(err, ErrInvalidOperand), "%s: expected ErrInvalidOperand, got %v", group.Name(), err)
	}
}

func TestScalar_IsZero(t *testing.T) {
	for _, group := range curves {
		assert.True(t, group.NewScalar().IsZero())
		assert.False(t, smallScalar(group, 1).IsZero())
	}
}

func TestScalar_Zeroize(t *testing.T) {
	for _, group := range curves {
		s := randomScalar(t, group)
		s.Zeroize()
		assert.True(t, s.IsZero())
	}
}

func TestScalar_Encoding(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			s := randomScalar(t, group)
			data, err := s.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, data, group.ScalarBytes())

			decoded := group.NewScalar()
			require.NoError(t, decoded.UnmarshalBinary(data))
			assert.True(t, s.Equal(decoded))
			data2, _ := decoded.MarshalBinary()
			assert.Equal(t, data, data2)

			tooBig := make([]byte, group.ScalarBytes())
			for i := range tooBig {
				tooBig[i] = 0xff
			}
			err = group.NewScalar().UnmarshalBinary(tooBig)
			assert.True(t, errors.Is(err, ErrInvalidEncoding))

			err = group.NewScalar().UnmarshalBinary(data[:len(data)-1])
			assert.True(t, errors.Is(err, ErrInvalidEncoding))
		})
	}
}

func TestScalar_Endianness(t *testing.T) {
	r, _ := smallScalar(Ristretto255{}, 1).MarshalBinary()
	assert.Equal(t, byte(1), r[0], "ristretto255 scalars are little endian")
	s, _ := smallScalar(Secp256k1{}, 1).MarshalBinary()
	assert.Equal(t, byte(1), s[31], "secp256k1 scalars are big endian")
}
