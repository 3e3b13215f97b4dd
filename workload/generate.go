package workload

import "math/rand"

// GenerateConfig shapes a random trace.
type GenerateConfig struct {
	Seed    int64
	Ops     int
	MaxSize int // Largest allocation, inclusive
	// FreePercent is the chance, in percent, that a step frees a live id
	// instead of allocating. Zero selects 45.
	FreePercent int
	// FreeAll appends frees for every id still live at the end.
	FreeAll bool
}

// DefaultGenerateConfig is a mixed small and large workload.
var DefaultGenerateConfig = GenerateConfig{
	Seed:        1,
	Ops:         100_000,
	MaxSize:     4096,
	FreePercent: 45,
}

// Generate builds a valid random trace. The same config always yields the
// same trace. Sizes are skewed toward small requests.
func Generate(cfg GenerateConfig) *Trace {
	maxSize := max(cfg.MaxSize, 1)
	freePct := cfg.FreePercent
	if freePct <= 0 {
		freePct = 45
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	t := &Trace{Ops: make([]Op, 0, cfg.Ops)}
	var live []uint32
	var next uint32

	for range cfg.Ops {
		if len(live) > 0 && rng.Intn(100) < freePct {
			i := rng.Intn(len(live))
			t.Ops = append(t.Ops, Op{Kind: OpFree, ID: live[i]})
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}
		t.Ops = append(t.Ops, Op{Kind: OpAlloc, ID: next, Size: randomSize(rng, maxSize)})
		live = append(live, next)
		next++
	}

	if cfg.FreeAll {
		for _, id := range live {
			t.Ops = append(t.Ops, Op{Kind: OpFree, ID: id})
		}
	}
	return t
}

// randomSize returns a size in [1, maxSize], three times out of four from
// the smallest eighth of the range.
func randomSize(rng *rand.Rand, maxSize int) int {
	if small := max(maxSize/8, 1); rng.Intn(4) != 0 {
		return 1 + rng.Intn(small)
	}
	return 1 + rng.Intn(maxSize)
}
