package rng

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/tevino/abool"
)

// rngFeeder carries gathered entropy to the full feeder.
var rngFeeder = make(chan []byte)

// The Feeder is used to feed entropy to the pool.
type Feeder struct {
	input        chan *entropyData
	entropy      int64
	needsEntropy *abool.AtomicBool
	buffer       *bytes.Buffer
	feed         chan<- []byte

	ctx       context.Context
	cancelCtx context.CancelFunc
}

type entropyData struct {
	data    []byte
	entropy int
}

// NewFeeder returns a new entropy Feeder. It collects supplied data until
// the configured minimum entropy is reached and then hands it to the pool.
func NewFeeder() *Feeder {
	return newFeeder(module.Ctx, rngFeeder)
}

func newFeeder(ctx context.Context, feed chan<- []byte) *Feeder {
	ctx, cancel := context.WithCancel(ctx)
	newFeeder := &Feeder{
		input:        make(chan *entropyData),
		needsEntropy: abool.NewBool(true),
		buffer:       new(bytes.Buffer),
		feed:         feed,
		ctx:          ctx,
		cancelCtx:    cancel,
	}
	go newFeeder.run()
	return newFeeder
}

// NeedsEntropy returns whether the feeder is currently gathering entropy.
func (f *Feeder) NeedsEntropy() bool {
	return f.needsEntropy.IsSet()
}

// SupplyEntropy supplies entropy to the Feeder, it will block until the Feeder has read from it.
func (f *Feeder) SupplyEntropy(data []byte, entropy int) {
	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	case <-f.ctx.Done():
	}
}

// SupplyEntropyIfNeeded supplies entropy to the Feeder, but will not block if no entropy is currently needed.
func (f *Feeder) SupplyEntropyIfNeeded(data []byte, entropy int) {
	if !f.needsEntropy.IsSet() {
		return
	}

	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	default:
	}
}

// SupplyEntropyAsInt supplies entropy to the Feeder, it will block until the Feeder has read from it.
func (f *Feeder) SupplyEntropyAsInt(n int64, entropy int) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	f.SupplyEntropy(b, entropy)
}

// SupplyEntropyAsIntIfNeeded supplies entropy to the Feeder, but will not block if no entropy is currently needed.
func (f *Feeder) SupplyEntropyAsIntIfNeeded(n int64, entropy int) {
	if f.needsEntropy.IsSet() { // avoid allocating a slice if possible
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(n))
		f.SupplyEntropyIfNeeded(b, entropy)
	}
}

// CloseFeeder stops the feed processing - the responsible goroutine exits.
// Gathered entropy that was not delivered yet is dropped.
func (f *Feeder) CloseFeeder() {
	f.cancelCtx()
}

func (f *Feeder) run() {
	defer f.needsEntropy.UnSet()

	for {
		// gather
		f.needsEntropy.Set()
	gather:
		for {
			select {
			case newEntropy := <-f.input:
				f.buffer.Write(newEntropy.data)
				f.entropy += int64(newEntropy.entropy)
				if f.entropy >= minFeedEntropy() {
					break gather
				}
			case <-f.ctx.Done():
				return
			}
		}
		// feed
		f.needsEntropy.UnSet()
		select {
		case f.feed <- f.buffer.Bytes():
		case <-f.ctx.Done():
			return
		}
		f.buffer = new(bytes.Buffer)
		f.entropy = 0
	}
}
