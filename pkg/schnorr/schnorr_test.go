package schnorr

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"
	"testing/iotest"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/stringhandler/tari-crypto/internal/hash"
	"github.com/stringhandler/tari-crypto/pkg/math/curve"
	"github.com/stringhandler/tari-crypto/pkg/math/sample"
)

var curves = []curve.Curve{curve.Ristretto255{}, curve.Secp256k1{}}

// signingCurves are the curves accepted for secret scalars.
var signingCurves = []curve.Curve{curve.Ristretto255{}}

// newKey returns a key pair of group. Keys of variable time curves are built
// directly, since they're only used to check verification.
func newKey(t *testing.T, group curve.Curve) *KeyPair {
	t.Helper()
	if group.ConstantTime() {
		kp, err := GenerateKey(rand.Reader, group)
		require.NoError(t, err)
		return kp
	}
	k, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)
	return &KeyPair{Private: k, Public: k.ActOnBase()}
}

// signWith signs m under kp, bypassing the constant time check for variable time curves.
func signWith(t *testing.T, kp *KeyPair, m []byte) *Signature {
	t.Helper()
	if kp.Curve().ConstantTime() {
		sig, err := kp.Sign(rand.Reader, m)
		require.NoError(t, err)
		return sig
	}
	aux := make([]byte, 32)
	_, err := rand.Read(aux)
	require.NoError(t, err)
	sig, err := signWithAux(aux, kp.Private, kp.Public, m)
	require.NoError(t, err)
	return sig
}

func TestSignVerify(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			for i := 0; i < 10; i++ {
				m := []byte{0xDE, 0xAD, 0xBE, 0xEF, byte(i)}

				kp := newKey(t, group)
				other := newKey(t, group)

				sig := signWith(t, kp, m)
				assert.True(t, sig.Verify(kp.Public, m))
				assert.True(t, Verify(kp.Public, m, sig))

				assert.False(t, Verify(other.Public, m, sig), "verified under another key")
				assert.False(t, Verify(kp.Public, []byte("another message"), sig), "verified another message")
			}
		})
	}
}

func TestSign_EmptyMessage(t *testing.T) {
	for _, group := range curves {
		kp := newKey(t, group)
		sig := signWith(t, kp, nil)
		assert.True(t, Verify(kp.Public, []byte{}, sig))
		assert.False(t, Verify(kp.Public, []byte{0}, sig))
	}
}

func TestSign_FreshNonces(t *testing.T) {
	for _, group := range signingCurves {
		kp, err := GenerateKey(rand.Reader, group)
		require.NoError(t, err)
		m := []byte("Hello world")

		sig1, err := kp.Sign(rand.Reader, m)
		require.NoError(t, err)
		sig2, err := kp.Sign(rand.Reader, m)
		require.NoError(t, err)

		assert.False(t, sig1.R.Equal(sig2.R), "%s: nonce reused", group.Name())
		assert.True(t, Verify(kp.Public, m, sig1))
		assert.True(t, Verify(kp.Public, m, sig2))
	}
}

func TestSign_SameAuxDifferentMessage(t *testing.T) {
	// a stuck source of randomness must not lead to nonce reuse across messages
	for _, group := range signingCurves {
		kp, err := GenerateKey(rand.Reader, group)
		require.NoError(t, err)
		aux := bytes.Repeat([]byte{0x42}, 32)

		sig1, err := kp.Sign(bytes.NewReader(aux), []byte("first"))
		require.NoError(t, err)
		sig2, err := kp.Sign(bytes.NewReader(aux), []byte("second"))
		require.NoError(t, err)
		assert.False(t, sig1.R.Equal(sig2.R))
	}
}

func TestSignDeterministic(t *testing.T) {
	for _, group := range signingCurves {
		kp, err := GenerateKey(rand.Reader, group)
		require.NoError(t, err)
		m := []byte("deterministic")

		sig1, err := SignDeterministic(kp.Private, m)
		require.NoError(t, err)
		sig2, err := SignDeterministic(kp.Private, m)
		require.NoError(t, err)

		assert.True(t, sig1.R.Equal(sig2.R))
		assert.True(t, sig1.S.Equal(sig2.S))
		assert.True(t, Verify(kp.Public, m, sig1))

		sig3, err := SignDeterministic(kp.Private, []byte("other"))
		require.NoError(t, err)
		assert.False(t, sig1.R.Equal(sig3.R))
	}
}

func TestSign_Errors(t *testing.T) {
	group := curve.Ristretto255{}
	kp, err := GenerateKey(rand.Reader, group)
	require.NoError(t, err)

	_, err = Sign(nil, kp.Private, []byte("m"))
	assert.True(t, errors.Is(err, sample.ErrEntropyUnavailable), "nil reader: %v", err)

	_, err = Sign(iotest.ErrReader(errors.New("boom")), kp.Private, []byte("m"))
	assert.True(t, errors.Is(err, sample.ErrEntropyUnavailable), "failing reader: %v", err)

	_, err = Sign(bytes.NewReader(make([]byte, 5)), kp.Private, []byte("m"))
	assert.True(t, errors.Is(err, sample.ErrEntropyUnavailable), "short reader: %v", err)

	_, err = Sign(rand.Reader, group.NewScalar(), []byte("m"))
	assert.True(t, errors.Is(err, ErrInvalidPrivateKey), "zero key: %v", err)

	_, err = Sign(rand.Reader, nil, []byte("m"))
	assert.True(t, errors.Is(err, ErrInvalidPrivateKey), "nil key: %v", err)

	_, err = SignDeterministic(group.NewScalar(), []byte("m"))
	assert.True(t, errors.Is(err, ErrInvalidPrivateKey))

	_, err = GenerateKey(nil, group)
	assert.True(t, errors.Is(err, sample.ErrEntropyUnavailable))
}

func TestVerify_Rejects(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			kp := newKey(t, group)
			m := []byte("Hello world")
			sig := signWith(t, kp, m)

			one := curve.FromUniform(group, []byte{1})
			otherGroup := curves[0]
			if otherGroup.Name() == group.Name() {
				otherGroup = curves[1]
			}
			otherKey := newKey(t, otherGroup)

			tests := []struct {
				name   string
				public curve.Point
				sig    *Signature
			}{
				{"tweaked s", kp.Public, &Signature{R: sig.R, S: sig.S.Add(one)}},
				{"tweaked R", kp.Public, &Signature{R: sig.R.Add(group.NewBasePoint()), S: sig.S}},
				{"negated s", kp.Public, &Signature{R: sig.R, S: sig.S.Negate()}},
				{"identity R", kp.Public, &Signature{R: group.NewPoint(), S: sig.S}},
				{"identity public key", group.NewPoint(), sig},
				{"zero signature", kp.Public, EmptySignature(group)},
				{"nil signature", kp.Public, nil},
				{"nil R", kp.Public, &Signature{S: sig.S}},
				{"nil public key", nil, sig},
				{"public key on another curve", otherKey.Public, sig},
				{"mixed curves", kp.Public, &Signature{R: sig.R, S: otherKey.Private}},
				{"nil valued s", kp.Public, &Signature{R: sig.R, S: nilScalar(group)}},
				{"nil valued R", kp.Public, &Signature{R: nilPoint(group), S: sig.S}},
				{"nil valued public key", nilPoint(group), sig},
			}
			for _, tt := range tests {
				assert.NotPanics(t, func() {
					assert.False(t, Verify(tt.public, m, tt.sig), tt.name)
				}, tt.name)
			}
		})
	}
}

func TestVerifyBinary(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			kp := newKey(t, group)
			m := []byte("Hello world")
			sig := signWith(t, kp, m)

			public, err := kp.Public.MarshalBinary()
			require.NoError(t, err)
			data, err := sig.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, data, group.PointBytes()+group.ScalarBytes())

			assert.True(t, VerifyBinary(group, public, m, data))

			for i := range data {
				tampered := bytes.Clone(data)
				tampered[i] ^= 0x01
				assert.False(t, VerifyBinary(group, public, m, tampered), "byte %d flipped", i)
			}
			assert.False(t, VerifyBinary(group, public, m, data[:len(data)-1]))
			assert.False(t, VerifyBinary(group, public, m, append(bytes.Clone(data), 0)))
			assert.False(t, VerifyBinary(group, public[:1], m, data))
			assert.False(t, VerifyBinary(group, make([]byte, len(public)), m, data))
			assert.False(t, VerifyBinary(group, nil, nil, nil))
		})
	}
}

func TestSignature_MarshalBinary(t *testing.T) {
	for _, group := range curves {
		sig := signWith(t, newKey(t, group), []byte("m"))

		data, err := sig.MarshalBinary()
		require.NoError(t, err)
		decoded := EmptySignature(group)
		require.NoError(t, decoded.UnmarshalBinary(data))
		assert.True(t, decoded.R.Equal(sig.R))
		assert.True(t, decoded.S.Equal(sig.S))

		var unknown Signature
		assert.Error(t, unknown.UnmarshalBinary(data))

		bad := EmptySignature(group)
		err = bad.UnmarshalBinary(data[1:])
		assert.True(t, errors.Is(err, curve.ErrInvalidEncoding))
	}
}

func TestSignature_CBOR(t *testing.T) {
	for _, group := range curves {
		kp := newKey(t, group)
		m := []byte("cbor")
		sig := signWith(t, kp, m)

		data, err := cbor.Marshal(sig)
		require.NoError(t, err)
		var decoded Signature
		require.NoError(t, cbor.Unmarshal(data, &decoded))
		assert.Equal(t, group.Name(), decoded.Curve().Name())
		assert.True(t, Verify(kp.Public, m, &decoded))

		publicData, err := cbor.Marshal(curve.NewMarshallablePoint(kp.Public))
		require.NoError(t, err)
		var public curve.MarshallablePoint
		require.NoError(t, cbor.Unmarshal(publicData, &public))
		assert.True(t, Verify(public.Point, m, &decoded))
	}
}

func TestChallenge(t *testing.T) {
	for _, group := range curves {
		R := group.NewBasePoint()
		P := R.Add(R)
		m := []byte("challenge")

		e1, err := Challenge(R, P, m)
		require.NoError(t, err)
		e2, err := Challenge(R, P, m)
		require.NoError(t, err)
		assert.True(t, e1.Equal(e2))
		assert.False(t, e1.IsZero())

		e3, err := Challenge(P, R, m)
		require.NoError(t, err)
		assert.False(t, e1.Equal(e3), "swapping R and P must change the challenge")

		e4, err := Challenge(R, P, []byte("challengf"))
		require.NoError(t, err)
		assert.False(t, e1.Equal(e4))

		e5, err := Challenge(R, P.Add(R), m)
		require.NoError(t, err)
		assert.False(t, e1.Equal(e5))
	}

	_, err := Challenge(curve.Ristretto255{}.NewBasePoint(), curve.Secp256k1{}.NewBasePoint(), nil)
	assert.True(t, errors.Is(err, curve.ErrInvalidOperand))
}

func TestParseKeys(t *testing.T) {
	group := curve.Ristretto255{}
	kp, err := GenerateKey(rand.Reader, group)
	require.NoError(t, err)
	privateData, err := kp.Private.MarshalBinary()
	require.NoError(t, err)
	publicData, err := kp.Public.MarshalBinary()
	require.NoError(t, err)

	parsed, err := ParsePrivateKey(group, privateData)
	require.NoError(t, err)
	assert.True(t, parsed.Public.Equal(kp.Public))

	public, err := ParsePublicKey(group, publicData)
	require.NoError(t, err)
	assert.True(t, public.Equal(kp.Public))

	_, err = ParsePrivateKey(group, make([]byte, 32))
	assert.True(t, errors.Is(err, ErrInvalidPrivateKey), "zero: %v", err)

	_, err = ParsePrivateKey(group, bytes.Repeat([]byte{0xff}, 32))
	assert.True(t, errors.Is(err, ErrInvalidPrivateKey), "out of range: %v", err)
	assert.True(t, errors.Is(err, curve.ErrInvalidEncoding), "out of range: %v", err)

	_, err = ParsePublicKey(group, make([]byte, 32))
	assert.True(t, errors.Is(err, curve.ErrInvalidEncoding), "identity: %v", err)

	_, err = ParsePublicKey(group, bytes.Repeat([]byte{0xff}, 32))
	assert.True(t, errors.Is(err, curve.ErrInvalidEncoding), "invalid point: %v", err)
}

func TestKeyPair_Zeroize(t *testing.T) {
	kp, err := GenerateKey(rand.Reader, curve.Ristretto255{})
	require.NoError(t, err)
	kp.Zeroize()
	assert.True(t, kp.Private.IsZero())
	_, err = kp.Sign(rand.Reader, []byte("m"))
	assert.True(t, errors.Is(err, ErrInvalidPrivateKey))
}

func TestConcurrentSignVerify(t *testing.T) {
	for _, group := range signingCurves {
		kp, err := GenerateKey(rand.Reader, group)
		require.NoError(t, err)

		var eg errgroup.Group
		for i := 0; i < 16; i++ {
			i := i
			eg.Go(func() error {
				m := []byte(fmt.Sprintf("message %d", i))
				sig, err := kp.Sign(rand.Reader, m)
				if err != nil {
					return err
				}
				if !Verify(kp.Public, m, sig) {
					return fmt.Errorf("signature %d failed to verify", i)
				}
				return nil
			})
		}
		require.NoError(t, eg.Wait(), group.Name())
	}
}

func nilScalar(group curve.Curve) curve.Scalar {
	if group.Name() == (curve.Secp256k1{}).Name() {
		return (*curve.Secp256k1Scalar)(nil)
	}
	return (*curve.Ristretto255Scalar)(nil)
}

func nilPoint(group curve.Curve) curve.Point {
	if group.Name() == (curve.Secp256k1{}).Name() {
		return (*curve.Secp256k1Point)(nil)
	}
	return (*curve.Ristretto255Point)(nil)
}

func TestVariableTimeCurveRejected(t *testing.T) {
	group := curve.Secp256k1{}
	k, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)
	m := []byte("m")

	_, err = GenerateKey(rand.Reader, group)
	assert.True(t, errors.Is(err, curve.ErrInvalidOperand), "GenerateKey: %v", err)

	_, err = Sign(rand.Reader, k, m)
	assert.True(t, errors.Is(err, curve.ErrInvalidOperand), "Sign: %v", err)

	_, err = SignDeterministic(k, m)
	assert.True(t, errors.Is(err, curve.ErrInvalidOperand), "SignDeterministic: %v", err)

	_, err = NewKeyPair(k)
	assert.True(t, errors.Is(err, curve.ErrInvalidOperand), "NewKeyPair: %v", err)

	data, err := k.MarshalBinary()
	require.NoError(t, err)
	_, err = ParsePrivateKey(group, data)
	assert.True(t, errors.Is(err, curve.ErrInvalidOperand), "ParsePrivateKey: %v", err)

	kp := &KeyPair{Private: k, Public: k.ActOnBase()}
	_, err = kp.Sign(rand.Reader, m)
	assert.True(t, errors.Is(err, curve.ErrInvalidOperand), "KeyPair.Sign: %v", err)

	// verification only involves public values, and stays available
	assert.True(t, Verify(kp.Public, m, signWith(t, kp, m)))
}

func TestChallenge_Transcript(t *testing.T) {
	R := curve.Ristretto255{}.NewBasePoint()
	P := R.Add(R)
	m := []byte("transcript")

	h := hash.New(challengeLabel)
	require.NoError(t, h.WriteAny(point{R}, point{P}, messageHash(m)))
	expected := curve.FromUniform(curve.Ristretto255{}, h.Sum())

	for i := 0; i < 3; i++ {
		e, err := Challenge(R, P, m)
		require.NoError(t, err)
		assert.True(t, expected.Equal(e), "call %d", i)
	}
}
