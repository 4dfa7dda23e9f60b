package exchange

import (
	"fmt"
	"time"

	"github.com/iamlucasmagalhaes/correio/store"
)

// Constants

// User-facing response messages, kept verbatim from the deployed
// protocol so existing clients print what their users expect.
const (
	msgServiceAvailable  = "Serviço Disponível"
	msgUnknownOperation  = "Operação desconhecida"
	msgAllFieldsRequired = "Todos os campos são obrigatórios"
	msgUsernameTaken     = "Nome de usuário já existe"
	msgRegistered        = "Usuário registrado com sucesso"
	msgBadCredentials    = "Credenciais inválidas"
	msgLoggedIn          = "Login realizado com sucesso"
	msgLoggedOut         = "Logout realizado com sucesso"
	msgNotAuthenticated  = "Usuário não autenticado"
	msgUnknownRecipient  = "Destinatário Inexistente"
	msgEmailSent         = "E-mail enviado com sucesso"
	msgEmailsReceivedFmt = "%d e-mails recebidos"
	msgInternalError     = "Erro interno do servidor"
)

// Structs

type service struct {
	store *store.Store
	now   func() time.Time
}

// Interfaces

// Service defines the operations the exchange offers to one
// connected client. Every method consumes the connection's
// session and one decoded request and produces exactly one
// response; none of them performs I/O.
type Service interface {

	// CheckConnection answers a liveness probe.
	// It never fails and works in any session state.
	CheckConnection(sess *Session, req *Request) *Response

	// Register creates a new account and its empty mailbox.
	// It works in any session state and does not log the
	// new account in.
	Register(sess *Session, req *Request) *Response

	// Login authenticates the supplied credentials and binds
	// the session to the account on success. A login on an
	// already bound session replaces the binding on success
	// and leaves it untouched on failure.
	Login(sess *Session, req *Request) *Response

	// Logout returns the session to the anonymous
	// state. It never fails.
	Logout(sess *Session, req *Request) *Response

	// SendEmail delivers a message from the session's user to
	// another registered user. It requires a bound session.
	SendEmail(sess *Session, req *Request) *Response

	// ReceiveEmails drains the session user's mailbox and
	// returns the pending emails in delivery order. Drained
	// emails are gone from the server; there is no redelivery.
	// It requires a bound session.
	ReceiveEmails(sess *Session, req *Request) *Response
}

// Functions

// NewService returns the exchange service
// operating on the supplied store.
func NewService(st *store.Store) Service {

	return &service{
		store: st,
		now:   time.Now,
	}
}

// Dispatch routes one decoded request to the service method
// matching its operation name. Unknown operation names produce a
// generic error response and touch neither session nor store.
func Dispatch(svc Service, sess *Session, req *Request) *Response {

	switch req.Operation {

	case OpCheckConnection:
		return svc.CheckConnection(sess, req)

	case OpRegister:
		return svc.Register(sess, req)

	case OpLogin:
		return svc.Login(sess, req)

	case OpLogout:
		return svc.Logout(sess, req)

	case OpSendEmail:
		return svc.SendEmail(sess, req)

	case OpReceiveEmails:
		return svc.ReceiveEmails(sess, req)

	default:
		return failure(msgUnknownOperation)
	}
}

// CheckConnection answers a liveness probe.
func (s *service) CheckConnection(sess *Session, req *Request) *Response {
	return success(msgServiceAvailable)
}

// Register creates a new account and its empty mailbox.
func (s *service) Register(sess *Session, req *Request) *Response {

	err := s.store.Register(req.Nome, req.Username, req.Senha)

	switch err {

	case nil:
		return success(msgRegistered)

	case store.ErrEmptyField:
		return failure(msgAllFieldsRequired)

	case store.ErrUsernameTaken:
		return failure(msgUsernameTaken)

	default:
		return failure(msgInternalError)
	}
}

// Login authenticates the supplied credentials and binds the
// session on success.
func (s *service) Login(sess *Session, req *Request) *Response {

	name, ok := s.store.Authenticate(req.Username, req.Senha)
	if !ok {
		return failure(msgBadCredentials)
	}

	sess.Bind(req.Username, name)

	resp := success(msgLoggedIn)
	resp.Nome = name

	return resp
}

// Logout clears the session.
func (s *service) Logout(sess *Session, req *Request) *Response {

	sess.Clear()

	return success(msgLoggedOut)
}

// SendEmail delivers a message to another registered user.
func (s *service) SendEmail(sess *Session, req *Request) *Response {

	if !sess.LoggedIn() {
		return failure(msgNotAuthenticated)
	}

	email := store.Email{
		Sender:     sess.Username,
		SenderName: sess.Name,
		Recipient:  req.Destinatario,
		Date:       s.now().Format(DateFormat),
		Subject:    req.Assunto,
		Body:       req.Corpo,
	}

	if err := s.store.Deliver(req.Destinatario, email); err != nil {
		return failure(msgUnknownRecipient)
	}

	return success(msgEmailSent)
}

// ReceiveEmails drains the session user's mailbox.
func (s *service) ReceiveEmails(sess *Session, req *Request) *Response {

	if !sess.LoggedIn() {
		return failure(msgNotAuthenticated)
	}

	drained := s.store.Drain(sess.Username)

	emails := make([]Email, 0, len(drained))
	for _, e := range drained {
		emails = append(emails, emailFromStore(e))
	}

	resp := success(fmt.Sprintf(msgEmailsReceivedFmt, len(emails)))
	resp.Emails = emails

	return resp
}
