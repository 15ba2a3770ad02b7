package chaintable

import (
	"math"
	"math/bits"
)

// maxCapacity caps the bucket array length of both variants.
// Once reached, tables stop growing and chains get longer.
const maxCapacity = 1 << 30

// roundPow2 returns the smallest power of 2 >= n, and 1 for n <= 1.
func roundPow2(n int) int {
	if n <= 1 {
		return 1
	}
	if n >= maxCapacity {
		return maxCapacity
	}
	return 1 << (64 - bits.LeadingZeros64(uint64(n-1)))
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// nextPrime returns the smallest prime >= n.
func nextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

// calcThreshold returns floor(n * loadFactor), clamped to math.MaxInt.
// A table grows once its count exceeds the threshold.
func calcThreshold(n int, loadFactor float64) int {
	t := float64(n) * loadFactor
	if t >= math.MaxInt {
		return math.MaxInt
	}
	return int(t)
}

// chainLength returns the ChainMap bucket count for a requested
// capacity: the smallest prime >= n, or the largest prime below
// maxCapacity when there is none in range.
func chainLength(n int) int {
	if p := nextPrime(min(n, maxCapacity)); p <= maxCapacity {
		return p
	}
	p := maxCapacity - 1
	for !isPrime(p) {
		p -= 2
	}
	return p
}
