package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// KeyLength is the width of every encoded ristretto255 scalar and point.
	KeyLength = 32

	// UniformBytes is the number of bytes reduced modulo the group order when
	// mapping a digest to a scalar.
	//
	// Reducing 2·SecParam bits makes the bias of the result negligible.
	UniformBytes = 2 * SecBytes // = 64

	// DigestLengthBytes is the default output length of the transcript hash.
	DigestLengthBytes = 2 * SecBytes // = 64
)
