// Package random provides short random text generation.
package random

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the length used for generated upload-name prefixes.
const DefaultLength = 6

// Text returns a string of n characters drawn independently and uniformly
// from the alphanumeric alphabet. It is not cryptographically secure; the
// only purpose is to make accidental filename collisions unlikely.
func Text(n int) string {
	if n <= 0 {
		n = DefaultLength
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
