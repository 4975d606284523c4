package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible experiment.
// Two experiments with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical ResultLogs.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Names ===

const (
	// SubsystemPolicy prefixes the stream a policy uses for its own decisions
	// (exploration coin flips, posterior draws).
	SubsystemPolicy = "policy"

	// SubsystemReward prefixes the stream the reward model draws noise from.
	SubsystemReward = "reward"
)

// SubsystemFor returns the subsystem name for kind (SubsystemPolicy or
// SubsystemReward) scoped to one algorithm, e.g. "reward/epsilon-greedy".
// Scoping by algorithm keeps each experiment's randomness independent of
// which other algorithms run in the same process and in which order.
func SubsystemFor(kind, algorithm string) string {
	return kind + "/" + algorithm
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation: each subsystem gets a PCG stream seeded with
// (masterSeed, masterSeed XOR fnv1a64(subsystemName)).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := uint64(p.key)
	rng := rand.New(rand.NewPCG(seed, seed^uint64(fnv1a64(name))))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
