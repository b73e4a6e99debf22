// ABOUTME: Auth gate deciding whether a protected action may proceed
// ABOUTME: Tracks the pending destination to resume after authentication

// Package gate decides, at the moment a protected action is requested,
// whether to allow it or interrupt with a sign-in prompt, and remembers
// where the user was headed so the caller can resume there after login.
//
// Guard is pure; it holds no state across the redirect boundary. Resumption
// is cooperative: whoever triggers the login flow carries the blocked
// destination (via Pending or navigation state of its own) and navigates to
// it once the session store reports an identity.
package gate

import (
	"sync"

	"github.com/luminalabs/academy/internal/session"
)

// DefaultDestination is the landing target used when a gated action carried
// no specific destination.
const DefaultDestination = "/"

// Decision is the outcome of Guard. When Allowed is false, Destination
// carries the intended target the caller should remember for resumption.
type Decision struct {
	Allowed     bool
	Destination string
}

// Guard allows the action when an identity is present and blocks it
// otherwise, preserving dest for the post-login redirect.
func Guard(dest string, identity *session.Identity) Decision {
	if identity != nil {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, Destination: dest}
}

// Pending remembers the most recent blocked destination. Guarding several
// actions before authentication completes overwrites the previous value;
// there is no queue. The value lives in memory only and does not survive a
// process restart.
type Pending struct {
	mu   sync.Mutex
	dest string
}

// Remember records dest as the resumption target, replacing any previous one.
func (p *Pending) Remember(dest string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dest = dest
}

// Consume returns the remembered destination and clears it. When nothing
// specific was remembered it falls back to DefaultDestination rather than
// failing.
func (p *Pending) Consume() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	dest := p.dest
	p.dest = ""
	if dest == "" {
		return DefaultDestination
	}
	return dest
}
