package server_test

import (
	stdlog "log"
	"net"
	"os"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/iamlucasmagalhaes/correio/exchange"
	"github.com/iamlucasmagalhaes/correio/server"
	"github.com/iamlucasmagalhaes/correio/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Variables

var testAddr string

// Functions

// TestMain boots one exchange server on an ephemeral port that
// all tests in this package talk to over real TCP connections.
func TestMain(m *testing.M) {

	st := store.NewStore()
	svc := exchange.NewService(st)

	srv, err := server.Init(log.NewNopLogger(), "127.0.0.1:0", svc)
	if err != nil {
		stdlog.Fatal(err)
	}
	testAddr = srv.Addr()

	go func() {
		_ = srv.Run()
	}()

	success := m.Run()

	srv.Close()

	os.Exit(success)
}

// dial opens one framed client connection to the test server.
func dial(t *testing.T) *exchange.Connection {

	conn, err := net.Dial("tcp", testAddr)
	require.NoError(t, err)

	t.Cleanup(func() { conn.Close() })

	return exchange.NewConnection(conn)
}

// roundTrip sends one request and reads back exactly one response.
func roundTrip(t *testing.T, c *exchange.Connection, req *exchange.Request) *exchange.Response {

	require.NoError(t, c.SendRequest(req))

	resp, err := c.ReceiveResponse()
	require.NoError(t, err)

	return resp
}

// TestCheckConnection probes the liveness operation.
func TestCheckConnection(t *testing.T) {

	c := dial(t)

	resp := roundTrip(t, c, &exchange.Request{Operation: "check_connection"})
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Serviço Disponível", resp.Message)
}

// TestEndToEndExchange registers two accounts on separate
// connections, mails from one session, and drains on the other.
func TestEndToEndExchange(t *testing.T) {

	alice := dial(t)
	bob := dial(t)

	resp := roundTrip(t, alice, &exchange.Request{
		Operation: "register",
		Nome:      "Alice A",
		Username:  "e2e_alice",
		Senha:     "pw1",
	})
	require.Equal(t, "success", resp.Status)

	resp = roundTrip(t, bob, &exchange.Request{
		Operation: "register",
		Nome:      "Bob B",
		Username:  "e2e_bob",
		Senha:     "pw2",
	})
	require.Equal(t, "success", resp.Status)

	// Sending before login is rejected and delivers nothing.
	resp = roundTrip(t, alice, &exchange.Request{
		Operation:    "send_email",
		Destinatario: "e2e_bob",
		Assunto:      "early",
		Corpo:        "too early",
	})
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Usuário não autenticado", resp.Message)

	resp = roundTrip(t, alice, &exchange.Request{
		Operation: "login",
		Username:  "e2e_alice",
		Senha:     "pw1",
	})
	require.Equal(t, "success", resp.Status)
	assert.Equal(t, "Alice A", resp.Nome)

	resp = roundTrip(t, alice, &exchange.Request{
		Operation:    "send_email",
		Destinatario: "e2e_bob",
		Assunto:      "Hi",
		Corpo:        "Hello",
	})
	require.Equal(t, "success", resp.Status)

	resp = roundTrip(t, bob, &exchange.Request{
		Operation: "login",
		Username:  "e2e_bob",
		Senha:     "pw2",
	})
	require.Equal(t, "success", resp.Status)

	resp = roundTrip(t, bob, &exchange.Request{Operation: "receive_emails"})
	require.Equal(t, "success", resp.Status)
	require.Len(t, resp.Emails, 1)
	assert.Equal(t, "e2e_alice", resp.Emails[0].Remetente)
	assert.Equal(t, "Alice A", resp.Emails[0].RemetenteNome)
	assert.Equal(t, "Hi", resp.Emails[0].Assunto)
	assert.Equal(t, "Hello", resp.Emails[0].Corpo)

	// Drained means gone.
	resp = roundTrip(t, bob, &exchange.Request{Operation: "receive_emails"})
	require.Equal(t, "success", resp.Status)
	assert.Empty(t, resp.Emails)
	assert.Equal(t, "0 e-mails recebidos", resp.Message)
}

// TestSessionIsPerConnection checks that one connection's login
// does not leak into another connection.
func TestSessionIsPerConnection(t *testing.T) {

	first := dial(t)
	second := dial(t)

	resp := roundTrip(t, first, &exchange.Request{
		Operation: "register",
		Nome:      "Carol C",
		Username:  "sess_carol",
		Senha:     "pw",
	})
	require.Equal(t, "success", resp.Status)

	resp = roundTrip(t, first, &exchange.Request{
		Operation: "login",
		Username:  "sess_carol",
		Senha:     "pw",
	})
	require.Equal(t, "success", resp.Status)

	// The second connection stays anonymous.
	resp = roundTrip(t, second, &exchange.Request{Operation: "receive_emails"})
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Usuário não autenticado", resp.Message)
}

// TestUnknownOperation gets a generic error response while the
// connection stays usable.
func TestUnknownOperation(t *testing.T) {

	c := dial(t)

	resp := roundTrip(t, c, &exchange.Request{Operation: "explode"})
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Operação desconhecida", resp.Message)

	resp = roundTrip(t, c, &exchange.Request{Operation: "check_connection"})
	assert.Equal(t, "success", resp.Status)
}

// TestMalformedRequestClosesConnection sends a line that is not
// JSON and expects the server to drop the connection, while other
// connections keep working.
func TestMalformedRequestClosesConnection(t *testing.T) {

	conn, err := net.Dial("tcp", testAddr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("definitely not json\n"))
	require.NoError(t, err)

	// The server terminates the violating connection without a
	// response; the next read reports the close.
	buf := make([]byte, 64)
	_, err = conn.Read(buf)
	assert.Error(t, err)

	// An unrelated connection is unaffected.
	c := dial(t)
	resp := roundTrip(t, c, &exchange.Request{Operation: "check_connection"})
	assert.Equal(t, "success", resp.Status)
}
