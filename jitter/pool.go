package jitter

import (
	"fmt"
	"math/bits"
	"time"
)

// Busy work defaults, see Options.
const (
	DefaultCyclesMin    = 2000
	DefaultCyclesSpread = 1000
)

// initial pool words, each with an equal count of ones and zeroes
var initialWords = [4]uint64{
	0x967ca962dd134c55,
	0x8e678ec4fa4a3721,
	0x741677f32bf14850,
	0x82359b9bbd5e1708,
}

const initialMixin uint64 = 0x3955170223037924

// seedOrder is the order in which the four timing samples of each seeding
// round are folded into the round's mixing word.
var seedOrder = [4][4]int{
	{0, 1, 2, 3},
	{1, 2, 0, 3},
	{2, 0, 3, 1},
	{3, 0, 1, 2},
}

// Options configure a Pool. Zero values select the defaults.
type Options struct {
	// CyclesMin is the minimum iteration count of each busy work loop.
	CyclesMin int
	// CyclesSpread is the size of the random range added to CyclesMin.
	CyclesSpread int

	Clock   Clock
	Ambient Ambient
	Memory  MemoryProbe

	// JitterHook, if set, is called with every measured jitter duration.
	JitterHook func(d time.Duration)
}

// Pool is a jitter seeded entropy pool.
//
// A Pool is not safe for concurrent use. Callers that share a Pool between
// goroutines must serialize access themselves, for example with a mutex.
type Pool struct {
	words [4]uint64
	mixin uint64
	start int64

	cyclesMin    int
	cyclesSpread int

	clock      Clock
	ambient    Ambient
	memory     MemoryProbe
	jitterHook func(d time.Duration)
}

// New returns a new Pool seeded from timing jitter, using the default
// clock, the shared ambient source and a host memory probe.
func New() (*Pool, error) {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a new seeded Pool. Missing collaborators are
// replaced by the defaults. An error is only returned if a default
// collaborator is not available on this host.
func NewWithOptions(opts Options) (*Pool, error) {
	p := &Pool{
		words:        initialWords,
		mixin:        initialMixin,
		cyclesMin:    opts.CyclesMin,
		cyclesSpread: opts.CyclesSpread,
		clock:        opts.Clock,
		ambient:      opts.Ambient,
		memory:       opts.Memory,
		jitterHook:   opts.JitterHook,
	}
	if p.cyclesMin <= 0 {
		p.cyclesMin = DefaultCyclesMin
	}
	if p.cyclesSpread <= 0 {
		p.cyclesSpread = DefaultCyclesSpread
	}

	if p.clock == nil {
		clock, err := newMonotonicClock()
		if err != nil {
			return nil, fmt.Errorf("jitter: failed to create clock: %w", err)
		}
		p.clock = clock
	}
	if p.ambient == nil {
		ambient, err := SharedAmbient()
		if err != nil {
			return nil, fmt.Errorf("jitter: failed to create ambient source: %w", err)
		}
		p.ambient = ambient
	}
	if p.memory == nil {
		p.memory = NewHostMemory(0)
	}

	p.seed()
	return p, nil
}

// seed moves the pool far away from its constants and from start-time
// based guessing.
func (p *Pool) seed() {
	p.start = p.clock.Now()

	// warm up
	p.waste()

	var samples [4]uint64
	for k := range p.words {
		for i := range samples {
			samples[i] = p.waste()
		}

		var mix uint64
		for _, i := range seedOrder[k] {
			// samples live in a narrow range, move them somewhere unexpected
			mix += samples[i] << uint(BoundedInt(p.fresh(), 64))
		}
		if k == 0 {
			mix ^= p.memory.Free()
		}

		p.words[k] ^= p.fresh() ^ mix
	}
}

func (p *Pool) fresh() uint64 {
	return p.ambient.Uint64()
}

// Entropize forces a re-mix of the pool with a new jitter measurement, without
// drawing output. Callers that share a Pool must hold their lock.
func (p *Pool) Entropize() {
	p.entropize()
}

// entropize re-mixes the pool with a new jitter measurement. It is called
// after every draw.
func (p *Pool) entropize() {
	d := p.waste()
	m := NewMixer(d)

	p.words[0] ^= m.Uint64()
	p.words[1] ^= m.Uint64()

	if d%10 == 0 {
		m.Seed(p.mixin)
	}

	p.words[2] ^= m.Uint64()
	p.words[3] ^= m.Uint64()

	route := BoundedInt(p.fresh(), 4)
	free := p.memory.Free()
	p.words[route] ^= free << uint(m.Intn(64))
}

// draw returns the next raw 64 bit output and advances the pool.
func (p *Pool) draw() uint64 {
	sh := NewMixer(p.fresh())

	result := Mix(bits.RotateLeft64(p.words[2], sh.Intn(64)))
	result ^= Mix(bits.RotateLeft64(p.words[0], sh.Intn(64)))
	result ^= Mix(p.words[1])
	result ^= Mix(bits.RotateLeft64(p.words[3], sh.Intn(64)))
	result ^= p.mixin
	result ^= Mix(p.fresh() ^ uint64(p.start))

	p.entropize()

	// diffuse
	for k := range p.words {
		p.words[k] <<= uint(sh.Intn(64))
	}
	p.words[0] ^= p.words[1]<<uint(sh.Intn(64)) | p.mixin
	p.words[1] ^= p.words[2]<<uint(sh.Intn(64)) | p.fresh()
	p.words[2] ^= p.words[3]<<uint(sh.Intn(64)) | p.mixin
	p.words[3] ^= p.words[0]<<uint(sh.Intn(64)) | p.fresh()

	// rotate slots
	p.words[0], p.words[1], p.words[2], p.words[3] = p.words[1], p.words[2], p.words[3], p.words[0]

	return result
}
