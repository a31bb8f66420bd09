package scoring

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"github.com/spigell/resume-analyzer/internal/extract"
)

// Band is a half-open score range [Min, Max).
type Band struct {
	Min int
	Max int
}

var (
	RequiredBand  = Band{Min: 80, Max: 100}
	PreferredBand = Band{Min: 65, Max: 90}
	OtherBand     = Band{Min: 60, Max: 90}
)

func (b Band) pick(n uint64) int {
	width := b.Max - b.Min
	if width <= 0 {
		return b.Min
	}
	return b.Min + int(n%uint64(width))
}

// ProficiencyEstimator assigns a presentation score to a matched skill. The
// value is a heuristic, not a measurement.
type ProficiencyEstimator interface {
	Estimate(skill string, band Band) int
}

// HashEstimator derives the score from a hash of the skill name and a seed,
// so the same input always produces the same score.
type HashEstimator struct {
	seed uint64
}

func NewHashEstimator(seed uint64) *HashEstimator {
	return &HashEstimator{seed: seed}
}

func (e *HashEstimator) Estimate(skill string, band Band) int {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], e.seed)
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(extract.FoldKey(skill)))
	return band.pick(h.Sum64())
}

// RandomEstimator draws uniformly from the band. A zero seed picks a random
// one. It is safe for concurrent use.
type RandomEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomEstimator(seed uint64) *RandomEstimator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomEstimator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (e *RandomEstimator) Estimate(_ string, band Band) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return band.pick(e.rng.Uint64())
}
