package synth

import "strings"

// Rule routes identifiers containing any of Keywords to Program.
type Rule struct {
	Keywords []string
	Program  Program
}

// Router maps identifiers to programs. Rules are tried in order with
// case-sensitive substring matching; the first match wins.
type Router struct {
	rules    []Rule
	fallback Program
}

// NewRouter creates a router that falls back to fallback.
func NewRouter(fallback Program, rules ...Rule) *Router {
	return &Router{rules: rules, fallback: fallback}
}

// DefaultRouter returns the standard category table.
func DefaultRouter() *Router {
	return NewRouter(Generative{},
		Rule{Keywords: []string{"techno", "psytrance"}, Program: Rhythm{}},
		Rule{Keywords: []string{"ambient", "lofi"}, Program: Drone{}},
		Rule{Keywords: []string{"industrial", "glitch"}, Program: Industrial{}},
	)
}

// Select returns the program for id. It never returns nil when the router
// has a fallback.
func (r *Router) Select(id string) Program {
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(id, kw) {
				return rule.Program
			}
		}
	}
	return r.fallback
}

// Rules returns the routing table in match order.
func (r *Router) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}
