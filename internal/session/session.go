// ABOUTME: Client-held session state machine for the snippet library
// ABOUTME: Decides which of bootstrapping, locked, shared or admin governs a client

package session

// State is one of the mutually exclusive client view modes.
type State int

const (
	// StateBootstrapping precedes all others: the server has no credential
	// yet and only a successful bootstrap can leave this state.
	StateBootstrapping State = iota
	// StateLocked is the default when a credential exists, the client holds
	// no trust flag and no share ids are present.
	StateLocked
	// StateShared is entered when share ids are present, regardless of the
	// trust flag; writes are not offered.
	StateShared
	// StateAdmin is entered when the trust flag is set; it persists across
	// restarts until logout or credential rejection.
	StateAdmin
)

func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateLocked:
		return "locked"
	case StateShared:
		return "shared"
	case StateAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Session is the client-side view-mode state machine. It is computed once at
// start from the persisted trust flag, inbound share ids and the server's
// needs-setup report, then driven by explicit transitions.
type Session struct {
	state    State
	shareIDs []string
	token    string
}

// Resume computes the initial state. needsSetup overrides everything;
// otherwise share ids select the shared view and a trust flag (carried here
// as a non-empty token) selects admin.
func Resume(trusted bool, token string, shareIDs []string, needsSetup bool) *Session {
	s := &Session{shareIDs: shareIDs, token: token}
	switch {
	case needsSetup:
		s.state = StateBootstrapping
	case len(shareIDs) > 0:
		s.state = StateShared
	case trusted:
		s.state = StateAdmin
	default:
		s.state = StateLocked
	}
	return s
}

// State returns the governing view mode.
func (s *Session) State() State { return s.state }

// ShareIDs returns the share capability in effect, or nil. Admins who
// authenticated while holding a share link have had it discarded.
func (s *Session) ShareIDs() []string {
	if s.state == StateAdmin {
		return nil
	}
	return s.shareIDs
}

// Token returns the session token held by the client, if any.
func (s *Session) Token() string { return s.token }

// Authenticated records a successful verify or bootstrap. Any share ids in
// the triggering context are discarded so the admin sees the full
// collection.
func (s *Session) Authenticated(token string) {
	s.state = StateAdmin
	s.token = token
	s.shareIDs = nil
}

// Logout clears the trust flag and returns to locked. No server call is
// involved; the caller is responsible for dropping any cached collection.
func (s *Session) Logout() {
	s.state = StateLocked
	s.token = ""
	s.shareIDs = nil
}

// CanWrite reports whether write operations are offered in this state.
func (s *Session) CanWrite() bool { return s.state == StateAdmin }

// Trusted reports whether the client currently holds the trust flag.
func (s *Session) Trusted() bool { return s.state == StateAdmin }
