// Package math includes important helpers for integer math.
package math

// PowerOf2 returns 2^n. The input must be below 64, anything
// above would result in an integer overflow.
func PowerOf2(n uint64) uint64 {
	if n >= 64 {
		panic("integer overflow")
	}
	return 1 << n
}
