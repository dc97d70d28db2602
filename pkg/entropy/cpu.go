package entropy

import (
	"time"
)

// sampleWindow is how long each jitter sample counts loop iterations for.
const sampleWindow = 50 * time.Microsecond

// CPUEntropy gathers bits samples of scheduling and timing jitter.
//
// Each sample is the number of iterations a busy loop completes within a
// short window, XORed with the low bits of the overshoot. A sample is
// credited as a single bit.
func CPUEntropy(bits int) []int {
	samples := make([]int, 0, bits)
	for len(samples) < bits {
		start := time.Now()
		deadline := start.Add(sampleWindow)
		iterations := 0
		var now time.Time
		for now = time.Now(); now.Before(deadline); now = time.Now() {
			iterations++
		}
		overshoot := now.Sub(deadline).Nanoseconds()
		samples = append(samples, iterations^int(overshoot&0xff))
	}
	return samples
}

// Gather adds bits samples of CPU entropy to the pool.
func (p *Pool) Gather(bits int) {
	p.Add(CPUEntropy(bits)...)
}
