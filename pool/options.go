// ABOUTME: Functional options applied during pool construction
// ABOUTME: Options only configure observability, never core semantics

package pool

// Option configures a Pool before its workers start
type Option func(*Pool)

// WithHooks installs observability callbacks fired as jobs move through
// the pool
func WithHooks(h Hooks) Option {
	return func(p *Pool) {
		p.hooks = h
	}
}
