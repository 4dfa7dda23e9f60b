package exchange

import (
	"github.com/go-kit/kit/metrics"
)

type metricsService struct {
	service       Service
	registrations metrics.Counter
	logins        metrics.Counter
	logouts       metrics.Counter
	delivered     metrics.Counter
	drained       metrics.Counter
}

// NewMetricsService wraps a provided existing service
// with the provided operation counters.
func NewMetricsService(s Service, registrations, logins, logouts, delivered, drained metrics.Counter) Service {
	return &metricsService{
		service:       s,
		registrations: registrations,
		logins:        logins,
		logouts:       logouts,
		delivered:     delivered,
		drained:       drained,
	}
}

func (s *metricsService) CheckConnection(sess *Session, req *Request) *Response {
	return s.service.CheckConnection(sess, req)
}

func (s *metricsService) Register(sess *Session, req *Request) *Response {

	resp := s.service.Register(sess, req)

	if resp.Status == StatusSuccess {
		s.registrations.Add(1)
	}

	return resp
}

func (s *metricsService) Login(sess *Session, req *Request) *Response {

	resp := s.service.Login(sess, req)

	if resp.Status == StatusSuccess {
		s.logins.Add(1)
	}

	return resp
}

func (s *metricsService) Logout(sess *Session, req *Request) *Response {

	resp := s.service.Logout(sess, req)

	if resp.Status == StatusSuccess {
		s.logouts.Add(1)
	}

	return resp
}

func (s *metricsService) SendEmail(sess *Session, req *Request) *Response {

	resp := s.service.SendEmail(sess, req)

	if resp.Status == StatusSuccess {
		s.delivered.Add(1)
	}

	return resp
}

func (s *metricsService) ReceiveEmails(sess *Session, req *Request) *Response {

	resp := s.service.ReceiveEmails(sess, req)

	if resp.Status == StatusSuccess {
		s.drained.Add(float64(len(resp.Emails)))
	}

	return resp
}
