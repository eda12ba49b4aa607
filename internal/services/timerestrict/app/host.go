package app

// JoinAttempt is a pending connection offered by the host server.
type JoinAttempt interface {
	Name() string
	Privileged() bool
	// Reject refuses the connection with a message shown to the player.
	Reject(message string)
}

// Session is a live connection.
type Session interface {
	Name() string
	Privileged() bool
	Disconnect(message string)
}

// SessionLister returns the live sessions. The enforcer copies the result
// before iterating, so disconnects may mutate the host's own collection.
type SessionLister interface {
	Sessions() []Session
}

// SessionListerFunc adapts a function to SessionLister.
type SessionListerFunc func() []Session

// Sessions calls f.
func (f SessionListerFunc) Sessions() []Session {
	return f()
}
