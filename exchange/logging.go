package exchange

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type loggingService struct {
	logger  log.Logger
	service Service
}

// NewLoggingService wraps a provided existing
// service with the provided logger.
func NewLoggingService(s Service, logger log.Logger) Service {
	return &loggingService{logger, s}
}

// CheckConnection wraps this service's CheckConnection
// method with added logging capabilities.
func (s *loggingService) CheckConnection(sess *Session, req *Request) *Response {

	resp := s.service.CheckConnection(sess, req)

	level.Debug(log.With(s.logger, "method", OpCheckConnection)).Log()

	return resp
}

// Register wraps this service's Register method
// with added logging capabilities.
func (s *loggingService) Register(sess *Session, req *Request) *Response {

	resp := s.service.Register(sess, req)

	logger := log.With(s.logger,
		"method", OpRegister,
		"username", req.Username,
	)

	if resp.Status != StatusSuccess {
		level.Info(logger).Log("msg", resp.Message)
	} else {
		level.Debug(logger).Log()
	}

	return resp
}

// Login wraps this service's Login method
// with added logging capabilities.
func (s *loggingService) Login(sess *Session, req *Request) *Response {

	resp := s.service.Login(sess, req)

	logger := log.With(s.logger,
		"method", OpLogin,
		"username", req.Username,
	)

	if resp.Status != StatusSuccess {
		level.Info(logger).Log("msg", "login attempt failed")
	} else {
		level.Debug(logger).Log()
	}

	return resp
}

// Logout wraps this service's Logout method
// with added logging capabilities.
func (s *loggingService) Logout(sess *Session, req *Request) *Response {

	username := sess.Username

	resp := s.service.Logout(sess, req)

	level.Debug(log.With(s.logger,
		"method", OpLogout,
		"username", username,
	)).Log()

	return resp
}

// SendEmail wraps this service's SendEmail method
// with added logging capabilities.
func (s *loggingService) SendEmail(sess *Session, req *Request) *Response {

	resp := s.service.SendEmail(sess, req)

	logger := log.With(s.logger,
		"method", OpSendEmail,
		"sender", sess.Username,
		"recipient", req.Destinatario,
	)

	if resp.Status != StatusSuccess {
		level.Info(logger).Log("msg", resp.Message)
	} else {
		level.Debug(logger).Log()
	}

	return resp
}

// ReceiveEmails wraps this service's ReceiveEmails
// method with added logging capabilities.
func (s *loggingService) ReceiveEmails(sess *Session, req *Request) *Response {

	resp := s.service.ReceiveEmails(sess, req)

	logger := log.With(s.logger,
		"method", OpReceiveEmails,
		"username", sess.Username,
	)

	if resp.Status != StatusSuccess {
		level.Info(logger).Log("msg", resp.Message)
	} else {
		level.Debug(logger).Log("delivered", len(resp.Emails))
	}

	return resp
}
