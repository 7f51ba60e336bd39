package engine

// RNG is an inline xorshift64 generator carried inside GameState so that
// every transition is a deterministic function of (state, action).
type RNG uint64

// NewRNG returns a generator seeded with seed. xorshift cannot start at 0,
// so a zero seed is corrected to 1.
func NewRNG(seed uint64) RNG {
	if seed == 0 {
		seed = 1
	}
	return RNG(seed)
}

func (r *RNG) next() uint64 {
	x := uint64(*r)
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*r = RNG(x)
	return x
}

// Intn returns a number in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	return int(r.next() % uint64(n))
}

// RollDie returns a uniform roll in [1, sides].
func (r *RNG) RollDie(sides int) int {
	return r.Intn(sides) + 1
}

// RollRPS returns one RPS outcome with a 2/6 chance each, mapping a
// six-sided roll onto the three faces.
func (r *RNG) RollRPS() TokenType {
	switch roll := r.RollDie(6); {
	case roll <= 2:
		return Rock
	case roll <= 4:
		return Paper
	default:
		return Scissors
	}
}

// Shuffle returns a Fisher-Yates shuffled copy of s. The input slice is not
// modified.
func Shuffle[T any](r *RNG, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
