package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stringhandler/tari-crypto/pkg/commitment"
	"github.com/stringhandler/tari-crypto/pkg/dhke"
	"github.com/stringhandler/tari-crypto/pkg/math/curve"
	"github.com/stringhandler/tari-crypto/pkg/schnorr"
)

// ErrAborted is returned by parties still running after another one failed.
var ErrAborted = errors.New("network aborted")

// Party announces a signed public key to everyone, checks the announcements
// of the others, and derives a shared secret with each of them.
//
// A failing party aborts the network, so that the others return instead of
// waiting for its announcement.
func Party(id string, ids []string, group curve.Curve, n Network, log zerolog.Logger) (secrets map[string][]byte, err error) {
	log = log.With().Str("party", id).Str("curve", group.Name()).Logger()
	defer func() {
		if err != nil {
			n.Abort()
		}
	}()

	kp, err := schnorr.GenerateKey(rand.Reader, group)
	if err != nil {
		return nil, err
	}
	defer kp.Zeroize()

	public, err := kp.Public.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sig, err := kp.Sign(rand.Reader, []byte(id))
	if err != nil {
		return nil, err
	}
	sigBytes, err := sig.MarshalBinary()
	if err != nil {
		return nil, err
	}
	n.Send(&Message{From: id, PublicKey: public, Signature: sigBytes})
	log.Info().Hex("public", public).Msg("announced key")

	secrets = make(map[string][]byte, len(ids)-1)
	for len(secrets) < len(ids)-1 {
		var msg *Message
		select {
		case msg = <-n.Next(id):
		case <-n.Done():
			return nil, fmt.Errorf("party %s: %w", id, ErrAborted)
		}
		if !schnorr.VerifyBinary(group, msg.PublicKey, []byte(msg.From), msg.Signature) {
			return nil, fmt.Errorf("party %s: invalid announcement from %s", id, msg.From)
		}
		pk, err := schnorr.ParsePublicKey(group, msg.PublicKey)
		if err != nil {
			return nil, err
		}
		secret, err := dhke.New(kp.Private, pk)
		if err != nil {
			return nil, err
		}
		secrets[msg.From] = append([]byte(nil), secret.Bytes()...)
		secret.Zeroize()
		log.Debug().Str("from", msg.From).Msg("derived shared secret")
	}
	log.Info().Int("secrets", len(secrets)).Msg("exchange done")
	return secrets, nil
}

// Commitments commits to a few values, and checks that their sum opens to the sum of the values.
func Commitments(group curve.Curve, values []uint64, log zerolog.Logger) error {
	f, err := commitment.NewFactory(group, 1)
	if err != nil {
		return err
	}
	sum := f.Zero()
	blindingSum := group.NewScalar()
	total := uint64(0)
	for _, v := range values {
		k, err := schnorr.GenerateKey(rand.Reader, group)
		if err != nil {
			return err
		}
		sum = sum.Add(f.CommitValue(k.Private, v))
		blindingSum = blindingSum.Add(k.Private)
		total += v
		k.Zeroize()
	}
	if !f.OpenValue(blindingSum, total, sum) {
		return fmt.Errorf("commitment to %d does not open", total)
	}
	data, err := sum.MarshalBinary()
	if err != nil {
		return err
	}
	log.Info().Uint64("total", total).Str("commitment", hex.EncodeToString(data)).Msg("commitments add up")
	return nil
}
