package store

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Functions

// LoadSeed reads pre-provisioned accounts from the file at path
// and inserts them into the store. Each line holds one account as
// username, display name and bcrypt password hash separated by
// sep. Seeded usernames collide with later registrations exactly
// like registered ones do.
func (s *Store) LoadSeed(path string, sep string) error {

	handle, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "could not open seed file")
	}
	defer handle.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	scanner := bufio.NewScanner(handle)

	line := 0
	for scanner.Scan() {

		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, sep)
		if len(fields) != 3 {
			return errors.Errorf("malformed seed entry on line %d: expected 3 fields, got %d", line, len(fields))
		}

		if (fields[0] == "") || (fields[1] == "") || (fields[2] == "") {
			return errors.Errorf("malformed seed entry on line %d: empty field", line)
		}

		username := fields[0]
		if _, present := s.users[username]; present {
			return errors.Errorf("duplicate seed username %q on line %d", username, line)
		}

		s.users[username] = User{
			Name:         fields[1],
			PasswordHash: []byte(fields[2]),
		}
		s.boxes[username] = make([]Email, 0, 4)
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "error while scanning seed file")
	}

	return nil
}
