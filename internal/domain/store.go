package domain

// VisitorStore persists the durable visitor identity.
type VisitorStore interface {
	GetVisitor() (VisitorIdentity, bool, error)
	SaveVisitor(v VisitorIdentity) error
}

// SessionStore holds session-scoped entries. Implementations wipe them
// when a new session starts.
type SessionStore interface {
	GetSession(key string, dest any) (bool, error)
	SaveSession(key string, value any) error
	DeleteSession(key string) error
}
