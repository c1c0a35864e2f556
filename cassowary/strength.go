package cassowary

// Strength is a constraint priority. The predefined tiers are spaced far
// enough apart that no quantity of weaker constraints can outweigh a single
// stronger one.
type Strength float64

const (
	// Required constraints must be satisfied exactly; adding one that
	// conflicts with the existing system fails with ErrUnsatisfiable.
	Required Strength = 1_001_001_000
	// Strong is the highest non-required tier.
	Strong Strength = 1_000_000
	// Medium sits between Strong and Weak.
	Medium Strength = 1_000
	// Weak constraints yield to everything else.
	Weak Strength = 1
)

// NewStrength combines per-tier weights into a single Strength, mirroring
// the three-column lexicographic weighting of the predefined tiers. Each
// weight is clamped to [0, 1000].
func NewStrength(strong, medium, weak float64) Strength {
	v := clampWeight(strong)*1_000_000 +
		clampWeight(medium)*1_000 +
		clampWeight(weak)
	return Strength(v)
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1000 {
		return 1000
	}
	return w
}

// clipStrength bounds a strength to the valid range [0, Required].
func clipStrength(s Strength) Strength {
	if s < 0 {
		return 0
	}
	if s > Required {
		return Required
	}
	return s
}
