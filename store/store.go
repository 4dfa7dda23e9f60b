package store

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Variables

// Sentinel errors returned by store operations. Callers match
// on these to pick the protocol response for a failed request.
var (
	ErrEmptyField       = errors.New("all fields are required")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrUnknownRecipient = errors.New("recipient does not exist")
)

// dummyHash is a valid bcrypt hash compared against whenever a
// supplied username is unknown, so that authenticating an unknown
// user costs the same bcrypt verification as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Structs

// User holds the account data of one registered user. Records
// are immutable once created and live for the process lifetime.
type User struct {
	Name         string
	PasswordHash []byte
}

// Email is one delivered message sitting in a recipient's
// mailbox until the recipient drains it.
type Email struct {
	Sender     string
	SenderName string
	Recipient  string
	Date       string
	Subject    string
	Body       string
}

// Store keeps all registered users and their mailboxes in
// memory. One mutex serializes every access to both maps, which
// keeps check-then-insert on registration and read-then-clear on
// drain atomic without further coordination.
type Store struct {
	mu    sync.Mutex
	users map[string]User
	boxes map[string][]Email
}

// Functions

// NewStore returns an empty store ready for use
// by any number of connection goroutines.
func NewStore() *Store {

	return &Store{
		users: make(map[string]User),
		boxes: make(map[string][]Email),
	}
}

// Register creates a new account under username and initializes
// its empty mailbox. It fails with ErrEmptyField if any argument
// is empty and with ErrUsernameTaken if the username is already
// registered. The password is stored only as a salted bcrypt hash.
func (s *Store) Register(name string, username string, password string) error {

	if (name == "") || (username == "") || (password == "") {
		return ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, present := s.users[username]; present {
		return ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	// A mailbox exists for every registered username from the
	// moment of registration, created in the same critical section.
	s.users[username] = User{
		Name:         name,
		PasswordHash: hash,
	}
	s.boxes[username] = make([]Email, 0, 4)

	return nil
}

// Authenticate checks supplied credentials and returns the
// account's display name on success. It fails closed: an unknown
// username and a wrong password are indistinguishable to the
// caller, and both cost one bcrypt comparison.
func (s *Store) Authenticate(username string, password string) (string, bool) {

	s.mu.Lock()
	user, present := s.users[username]
	s.mu.Unlock()

	if !present {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", false
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", false
	}

	return user.Name, true
}

// Deliver appends email to the recipient's mailbox. It fails with
// ErrUnknownRecipient if no account exists under that username.
func (s *Store) Deliver(recipient string, email Email) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, present := s.users[recipient]; !present {
		return ErrUnknownRecipient
	}

	s.boxes[recipient] = append(s.boxes[recipient], email)

	return nil
}

// Drain returns all pending emails of username in delivery order
// and leaves the mailbox empty, both in one critical section. An
// email returned once is never returned again; an unknown or
// empty mailbox yields a nil slice.
func (s *Store) Drain(username string) []Email {

	s.mu.Lock()
	defer s.mu.Unlock()

	box := s.boxes[username]
	if len(box) == 0 {
		return nil
	}

	s.boxes[username] = make([]Email, 0, 4)

	return box
}
