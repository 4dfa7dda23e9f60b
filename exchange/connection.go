package exchange

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// Structs

// Connection wraps one TCP connection with the exchange's wire
// framing: every request and every response is one JSON object
// terminated by a newline. Compact JSON never contains a raw
// newline, so the delimiter is unambiguous and the one-object-
// per-message contract survives TCP segmentation.
type Connection struct {
	Conn   net.Conn
	Reader *bufio.Reader
}

// Functions

// NewConnection creates a framed connection
// on top of a raw network connection.
func NewConnection(c net.Conn) *Connection {

	return &Connection{
		Conn:   c,
		Reader: bufio.NewReader(c),
	}
}

// Receive blocks until the next newline-terminated request
// arrives and decodes it. An io.EOF passes through untouched so
// callers can tell an orderly disconnect from a protocol
// violation; any decode failure is a protocol violation.
func (c *Connection) Receive() (*Request, error) {

	text, err := c.Reader.ReadString('\n')
	if err != nil {
		return nil, err
	}

	req := new(Request)
	if err := json.Unmarshal([]byte(strings.TrimRight(text, "\r\n")), req); err != nil {
		return nil, errors.Wrap(err, "failed to decode request")
	}

	return req, nil
}

// Send encodes resp and writes it to the client
// followed by the newline delimiter.
func (c *Connection) Send(resp *Response) error {

	buf, err := json.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, "failed to encode response")
	}

	if _, err := fmt.Fprintf(c.Conn, "%s\n", buf); err != nil {
		return errors.Wrap(err, "failed to write response")
	}

	return nil
}

// SendRequest encodes req and writes it newline-terminated. It
// is the client-side counterpart of Receive and exists for test
// drivers and client implementations.
func (c *Connection) SendRequest(req *Request) error {

	buf, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}

	if _, err := fmt.Fprintf(c.Conn, "%s\n", buf); err != nil {
		return errors.Wrap(err, "failed to write request")
	}

	return nil
}

// ReceiveResponse reads and decodes one newline-terminated
// response, the client-side counterpart of Send.
func (c *Connection) ReceiveResponse() (*Response, error) {

	text, err := c.Reader.ReadString('\n')
	if err != nil {
		return nil, err
	}

	resp := new(Response)
	if err := json.Unmarshal([]byte(strings.TrimRight(text, "\r\n")), resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	return resp, nil
}
