// ABOUTME: Tests for the auth gate decision and pending destination
// ABOUTME: Covers block/proceed, last-write-wins, and default fallback

package gate

import (
	"testing"

	"github.com/luminalabs/academy/internal/session"
)

func TestGuard_BlockedWhenUnauthenticated(t *testing.T) {
	d := Guard("/tool/42", nil)
	if d.Allowed {
		t.Error("expected blocked decision")
	}
	if d.Destination != "/tool/42" {
		t.Errorf("Destination = %q, want \"/tool/42\"", d.Destination)
	}
}

func TestGuard_ProceedsWhenAuthenticated(t *testing.T) {
	identity := &session.Identity{ID: "1", Email: "a@x.com"}

	for _, dest := range []string{"/tool/42", "", "/courses/7"} {
		d := Guard(dest, identity)
		if !d.Allowed {
			t.Errorf("Guard(%q) blocked for authenticated identity", dest)
		}
	}
}

func TestPending_LastWriteWins(t *testing.T) {
	var p Pending
	p.Remember("/tool/42")
	p.Remember("/tool/99")

	if got := p.Consume(); got != "/tool/99" {
		t.Errorf("Consume() = %q, want \"/tool/99\"", got)
	}
}

func TestPending_ConsumeIsReadOnce(t *testing.T) {
	var p Pending
	p.Remember("/tool/42")

	if got := p.Consume(); got != "/tool/42" {
		t.Errorf("first Consume() = %q, want \"/tool/42\"", got)
	}
	if got := p.Consume(); got != DefaultDestination {
		t.Errorf("second Consume() = %q, want default %q", got, DefaultDestination)
	}
}

func TestPending_EmptyFallsBackToDefault(t *testing.T) {
	var p Pending
	if got := p.Consume(); got != DefaultDestination {
		t.Errorf("Consume() = %q, want %q", got, DefaultDestination)
	}

	// A gated generic entry point remembers an empty destination; resumption
	// still lands somewhere sensible.
	p.Remember("")
	if got := p.Consume(); got != DefaultDestination {
		t.Errorf("Consume() = %q, want %q", got, DefaultDestination)
	}
}

func TestGateThenLogin_ResumesLatestDestination(t *testing.T) {
	var p Pending

	for _, dest := range []string{"/tool/42", "/tool/99"} {
		if d := Guard(dest, nil); !d.Allowed {
			p.Remember(d.Destination)
		}
	}

	// Login succeeded; the page resumes to the most recent target.
	identity := &session.Identity{ID: "1", Email: "a@x.com"}
	target := p.Consume()
	if target != "/tool/99" {
		t.Errorf("resumption target = %q, want \"/tool/99\"", target)
	}
	if d := Guard(target, identity); !d.Allowed {
		t.Error("expected resumed navigation to proceed")
	}
}
