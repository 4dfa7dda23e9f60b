package exchange

// Structs

// Session is the per-connection authentication state. It is owned
// exclusively by the goroutine handling that connection and is
// discarded when the connection closes; nothing about it survives
// a reconnect. An empty Username means the session is anonymous.
type Session struct {
	Username string
	Name     string
}

// Functions

// LoggedIn reports whether the session is
// bound to an authenticated user.
func (s *Session) LoggedIn() bool {
	return s.Username != ""
}

// Bind sets the session's authenticated identity. Binding an
// already bound session simply replaces the identity, which is
// what a repeated successful login does.
func (s *Session) Bind(username string, name string) {
	s.Username = username
	s.Name = name
}

// Clear returns the session to the anonymous state.
func (s *Session) Clear() {
	s.Username = ""
	s.Name = ""
}
