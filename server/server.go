package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/iamlucasmagalhaes/correio/exchange"
)

// Structs

// Server owns the listening socket of the exchange and spawns
// one goroutine per accepted client connection.
type Server struct {
	logger   log.Logger
	service  exchange.Service
	listener net.Listener
}

// Functions

// Init opens a TCP listening socket on addr and returns a server
// dispatching accepted connections onto the supplied service.
func Init(logger log.Logger, addr string, service exchange.Service) (*Server, error) {

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %v", addr, err)
	}

	level.Info(logger).Log(
		"msg", "listening for incoming client connections",
		"addr", listener.Addr().String(),
	)

	return &Server{
		logger:   logger,
		service:  service,
		listener: listener,
	}, nil
}

// Addr returns the address the server is listening on, useful
// when the configured port was 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close shuts the listening socket. In-flight connections are
// not drained; their goroutines end when their clients go away.
func (s *Server) Close() error {
	return s.listener.Close()
}

// Run loops over incoming connections and dispatches each one to
// a goroutine taking care of the requests supplied. It keeps
// accepting no matter how many handlers are active and returns
// only when accepting fails, normally because the listening
// socket was closed.
func (s *Server) Run() error {

	for {

		conn, err := s.listener.Accept()
		if err != nil {
			return fmt.Errorf("accepting incoming connection failed with: %v", err)
		}

		go s.handleConnection(conn)
	}
}

// isDisconnect reports whether err is a client going away rather
// than a protocol violation: an orderly EOF, a connection reset,
// or reading from a socket that was already closed.
func isDisconnect(err error) bool {

	return errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET)
}

// handleConnection owns the full lifecycle of one accepted
// connection: read one request, dispatch it, write exactly one
// response, repeat. Any protocol or transport failure terminates
// only this connection; the session dies with it.
func (s *Server) handleConnection(conn net.Conn) {

	defer conn.Close()

	c := exchange.NewConnection(conn)
	sess := &exchange.Session{}

	clientAddr := conn.RemoteAddr().String()

	level.Debug(s.logger).Log("msg", "client connected", "client", clientAddr)

	for {

		req, err := c.Receive()
		if err != nil {

			if isDisconnect(err) {
				level.Debug(s.logger).Log("msg", "client disconnected", "client", clientAddr)
				return
			}

			// A malformed request is a fatal protocol violation
			// under one-object-per-line framing; no resync attempt.
			level.Error(s.logger).Log(
				"msg", "terminating connection",
				"client", clientAddr,
				"err", err,
			)

			return
		}

		resp := exchange.Dispatch(s.service, sess, req)

		if err := c.Send(resp); err != nil {
			level.Error(s.logger).Log(
				"msg", "error while sending response to client",
				"client", clientAddr,
				"err", err,
			)
			return
		}
	}
}
