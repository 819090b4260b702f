// Package taricrypto exposes Schnorr key generation, signing and verification
// over ristretto255, using fixed width byte arrays only.
//
// Private keys, public keys, and both halves of a signature are KeyLength bytes long.
// Callers own every buffer, and clear private keys with Zeroize once done.
//
// All functions are safe for concurrent use.
//
// The generic building blocks live under pkg/: pkg/math/curve for the groups,
// pkg/schnorr for signatures over any group, pkg/dhke and pkg/commitment.
package taricrypto
