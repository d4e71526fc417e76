// Package common holds small helpers shared across console components.
package common

// WipeByteArray zeroes the buffer in place. Used to scrub passwords from
// memory once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
