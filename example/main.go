package main

import (
	"bytes"
	"sync"

	"github.com/rs/zerolog"

	taricrypto "github.com/stringhandler/tari-crypto"
	"github.com/stringhandler/tari-crypto/pkg/math/curve"
)

func Demo(log zerolog.Logger) error {
	priv, pub, err := taricrypto.RandomKeypair()
	if err != nil {
		return err
	}
	defer taricrypto.Zeroize(&priv)
	log.Info().Hex("public", pub[:]).Msg("keys generated")

	msg := []byte("Hello world")
	r, s, err := taricrypto.Sign(&priv, msg)
	if err != nil {
		return err
	}
	log.Info().Hex("r", r[:]).Hex("s", s[:]).Msg("signed message")

	if taricrypto.Verify(&pub, msg, &r, &s) {
		log.Info().Msg("check signature: SUCCESS")
	} else {
		log.Error().Msg("check signature: FAILED")
	}
	return nil
}

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.InfoLevel).With().
		Timestamp().
		Str("version", taricrypto.Version()).
		Logger()

	if err := Demo(log); err != nil {
		log.Fatal().Err(err).Msg("demo failed")
	}

	ids := []string{"a", "b", "c", "d"}
	group := curve.Ristretto255{}
	net := NewNetwork(ids)
	results := make([]map[string][]byte, len(ids))
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i], errs[i] = Party(id, ids, group, net, log)
		}(i, id)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			log.Fatal().Err(err).Str("party", ids[i]).Msg("exchange failed")
		}
	}
	for i, a := range ids {
		for j, b := range ids {
			if i != j && !bytes.Equal(results[i][b], results[j][a]) {
				log.Fatal().Str("a", a).Str("b", b).Msg("shared secrets differ")
			}
		}
	}
	log.Info().Str("curve", group.Name()).Msg("all shared secrets agree")

	if err := Commitments(group, []uint64{10, 20, 12}, log); err != nil {
		log.Fatal().Err(err).Msg("commitments failed")
	}
}
