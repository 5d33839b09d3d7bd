// Package session tracks the in-memory state of live sessions: which tokens
// are active per nickname and, optionally, which network origin a token is
// pinned to. Both structures are process-lifetime scoped; they are lost on
// restart, which is acceptable because tokens remain independently verifiable
// and the revocation list is durable.
package session

import "sync"

// Registry maps a nickname to its ordered list of active tokens and enforces
// the configured maximum of concurrent sessions per nickname.
//
// CanOpen and Record are separate calls, so two concurrent logins for the
// same nickname can both pass the check and briefly overshoot the cap. The
// registry tolerates that instead of serializing every login.
type Registry struct {
	mu          sync.Mutex
	maxSessions int
	active      map[string][]string
}

// NewRegistry creates a Registry allowing up to maxSessions concurrent
// sessions per nickname.
func NewRegistry(maxSessions int) *Registry {
	return &Registry{
		maxSessions: maxSessions,
		active:      make(map[string][]string),
	}
}

// CanOpen reports whether the nickname is below its session cap.
func (r *Registry) CanOpen(nickname string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active[nickname]) < r.maxSessions
}

// Record appends token to the nickname's active list.
func (r *Registry) Record(nickname, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[nickname] = append(r.active[nickname], token)
}

// Remove deletes token from the nickname's active list; removing an unknown
// token is a no-op.
func (r *Registry) Remove(nickname, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens := r.active[nickname]
	for i, t := range tokens {
		if t == token {
			r.active[nickname] = append(tokens[:i], tokens[i+1:]...)
			break
		}
	}
	if len(r.active[nickname]) == 0 {
		delete(r.active, nickname)
	}
}

// ActiveCount returns the number of active sessions for a nickname.
func (r *Registry) ActiveCount(nickname string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active[nickname])
}
