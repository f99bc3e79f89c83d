package jitter

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"

	"github.com/safing/jitterpool/log"
)

// Default ambient source settings.
const (
	DefaultAmbientCipher           = "aes"
	DefaultAmbientReseedAfterBytes = 1000000

	ambientBlockSize = 64
	ambientSeedSize  = 32
)

// FortunaAmbient is an Ambient source backed by a Fortuna generator that is
// seeded, and periodically reseeded, from the operating system. It is safe
// for concurrent use.
type FortunaAmbient struct {
	lock sync.Mutex

	gen         *fortuna.Generator
	buf         []byte
	served      int64
	reseedAfter int64
}

var (
	sharedAmbient     *FortunaAmbient
	sharedAmbientErr  error
	sharedAmbientOnce sync.Once
)

// SharedAmbient returns the process-wide ambient source, creating it with
// default settings on first use.
func SharedAmbient() (*FortunaAmbient, error) {
	sharedAmbientOnce.Do(func() {
		sharedAmbient, sharedAmbientErr = NewAmbient(DefaultAmbientCipher, DefaultAmbientReseedAfterBytes)
	})
	return sharedAmbient, sharedAmbientErr
}

func newCipherFunc(name string) (func(key []byte) (cipher.Block, error), error) {
	switch name {
	case "aes":
		return aes.NewCipher, nil
	case "serpent":
		return serpent.NewCipher, nil
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", name)
	}
}

// NewAmbient returns a new Fortuna backed ambient source using the given
// block cipher ("aes" or "serpent"). The generator is reseeded from the
// operating system after reseedAfterBytes bytes were served.
func NewAmbient(cipherName string, reseedAfterBytes int64) (*FortunaAmbient, error) {
	newCipher, err := newCipherFunc(cipherName)
	if err != nil {
		return nil, err
	}
	if reseedAfterBytes <= 0 {
		reseedAfterBytes = DefaultAmbientReseedAfterBytes
	}

	a := &FortunaAmbient{
		gen:         fortuna.NewGenerator(newCipher),
		reseedAfter: reseedAfterBytes,
	}
	if err := a.reseed(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *FortunaAmbient) reseed() error {
	seed := make([]byte, ambientSeedSize)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Errorf("could not read seed from os: %w", err)
	}
	a.gen.Reseed(seed)
	a.served = 0
	return nil
}

// Uint64 returns the next ambient word.
func (a *FortunaAmbient) Uint64() uint64 {
	a.lock.Lock()
	defer a.lock.Unlock()

	if len(a.buf) < 8 {
		if a.served >= a.reseedAfter {
			if err := a.reseed(); err != nil {
				// keep using the already seeded generator
				log.Warningf("jitter: failed to reseed ambient source: %s", err)
			}
		}
		a.buf = a.gen.PseudoRandomData(ambientBlockSize)
		a.served += ambientBlockSize
	}

	v := binary.LittleEndian.Uint64(a.buf)
	a.buf = a.buf[8:]
	return v
}
