package exchange

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/generic"
	"github.com/iamlucasmagalhaes/correio/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Functions

// TestMetricsMiddleware checks that the counters move only on
// successful operations.
func TestMetricsMiddleware(t *testing.T) {

	st := store.NewStore()
	require.NoError(t, st.Register("Bob B", "bob", "pw2"))

	registrations := generic.NewCounter("registrations")
	logins := generic.NewCounter("logins")
	logouts := generic.NewCounter("logouts")
	delivered := generic.NewCounter("delivered")
	drained := generic.NewCounter("drained")

	svc := NewMetricsService(
		NewLoggingService(NewService(st), log.NewNopLogger()),
		registrations, logins, logouts, delivered, drained,
	)

	sess := &Session{}

	svc.Register(sess, &Request{Nome: "Alice A", Username: "alice", Senha: "pw1"})
	svc.Register(sess, &Request{Nome: "Alice A", Username: "alice", Senha: "pw1"})
	assert.Equal(t, float64(1), registrations.Value())

	svc.Login(sess, &Request{Username: "alice", Senha: "nope"})
	assert.Equal(t, float64(0), logins.Value())
	svc.Login(sess, &Request{Username: "alice", Senha: "pw1"})
	assert.Equal(t, float64(1), logins.Value())

	svc.SendEmail(sess, &Request{Destinatario: "bob", Assunto: "a", Corpo: "b"})
	svc.SendEmail(sess, &Request{Destinatario: "bob", Assunto: "c", Corpo: "d"})
	svc.SendEmail(sess, &Request{Destinatario: "nobody", Assunto: "e", Corpo: "f"})
	assert.Equal(t, float64(2), delivered.Value())

	svc.Login(sess, &Request{Username: "bob", Senha: "pw2"})
	svc.ReceiveEmails(sess, &Request{})
	assert.Equal(t, float64(2), drained.Value())

	svc.Logout(sess, &Request{})
	assert.Equal(t, float64(1), logouts.Value())
}
