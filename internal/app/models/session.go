package models

// SessionKind tags the session union so callers can switch exhaustively
// instead of probing field presence.
type SessionKind string

const (
	SessionAuthenticated SessionKind = "authenticated"
	SessionGuest         SessionKind = "guest"
	SessionAnonymous     SessionKind = "anonymous"
)

// Session is the tagged union of the three login outcomes. The profile
// fields are only meaningful when Kind is SessionAuthenticated or
// SessionGuest.
type Session struct {
	Kind        SessionKind `json:"kind"`
	UID         string      `json:"uid,omitempty"`
	DisplayName string      `json:"displayName,omitempty"`
	Email       string      `json:"email,omitempty"`
	PhotoURL    string      `json:"photoURL,omitempty"`
}

// Anonymous is the zero session: nobody is signed in.
func Anonymous() Session {
	return Session{Kind: SessionAnonymous}
}

// SignedIn reports whether the session may use the planner.
func (s Session) SignedIn() bool {
	return s.Kind == SessionAuthenticated || s.Kind == SessionGuest
}
