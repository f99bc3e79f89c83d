package jitter

import (
	"encoding/binary"
)

// Absorb folds externally gathered entropy into the pool. Full 8 byte chunks
// are read big endian, stretched with Mix and XORed, OR-combined with the
// following word, into a word chosen by the elapsed time. Remaining bytes are
// taken as one step of a Mixer stream seeded with the byte and XORed into a
// word chosen by time, so a zero byte changes the pool too. Every byte of
// data is used. An empty slice leaves the pool untouched.
func (p *Pool) Absorb(data []byte) {
	if len(data) == 0 {
		return
	}
	start := p.clock.Now()

	i := 0
	for ; i+8 <= len(data); i += 8 {
		chunk := binary.BigEndian.Uint64(data[i:])
		route := p.absorbRoute(start)
		// stretch first, so the OR partner cannot mask a single bit change
		p.words[route] ^= Mix(chunk) | p.words[(route+1)%4]
	}

	for ; i < len(data); i++ {
		route := p.absorbRoute(start)
		// Mix(0) is 0, step the stream instead
		p.words[route] ^= Mix(uint64(data[i]) + mixerIncrement)
	}
}

func (p *Pool) absorbRoute(start int64) int {
	return BoundedInt(uint64(p.clock.Now()-start), 4)
}
