// Package schnorr implements single party Schnorr signatures over any curve.Curve.
//
// A signature on a message m by a key pair (k, P = k·G) is a pair (R, s), with
//
//	R = r·G,  e = H(R, P, m),  s = r + e·k
//
// for a fresh nonce r, and H the BLAKE3 transcript hash reduced modulo the
// group order. Verification accepts iff s·G = R + e·P.
//
// Nonces are hedged: they are derived from the private key and the message,
// together with 32 bytes read from the caller's source of randomness. Two
// signatures of the same message thus use different nonces.
package schnorr
