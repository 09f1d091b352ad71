package searcher

type Option func(m *Minimax)

// WithGoroutines splits the root moves across n workers, each on a private copy of the board.
// Values below 2 keep the search sequential.
func WithGoroutines(n int) Option {
	return func(m *Minimax) {
		if n > 0 {
			m.goroutines = n
		}
	}
}

// WithMetrics collects node, leaf and cutoff counts into Result.Metrics.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.withMetrics = true
	}
}
