package network

import "math/rand"

// Set holds the particles of one network. The whole set is replaced on every
// reinitialization; particles never carry over between viewports.
type Set struct {
	cfg        Config
	rng        *rand.Rand
	particles  []Particle
	generation uint64
}

// NewSet creates an empty particle set drawing randomness from rng
func NewSet(cfg Config, rng *rand.Rand) *Set {
	return &Set{cfg: cfg, rng: rng}
}

// Reinitialize discards all particles and creates clamp(count) new ones inside s
func (s *Set) Reinitialize(count int, surface Surface) {
	n := s.cfg.ClampCount(count)
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = newParticle(s.rng, surface, s.cfg)
	}
	s.particles = particles
	s.generation++
}

// Len returns the number of particles
func (s *Set) Len() int {
	return len(s.particles)
}

// Particles returns the live particle slice; callers must not retain it across a
// reinitialization
func (s *Set) Particles() []Particle {
	return s.particles
}

// Generation counts reinitializations
func (s *Set) Generation() uint64 {
	return s.generation
}
