package exchange

import (
	"github.com/iamlucasmagalhaes/correio/store"
)

// Constants

// Status values carried by every response.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation names recognized by the dispatcher.
const (
	OpCheckConnection = "check_connection"
	OpRegister        = "register"
	OpLogin           = "login"
	OpLogout          = "logout"
	OpSendEmail       = "send_email"
	OpReceiveEmails   = "receive_emails"
)

// DateFormat is the timestamp layout stamped onto
// delivered emails, as existing clients render it.
const DateFormat = "02/01/2006 15:04:05"

// Structs

// Request is one decoded client request. Field names on the wire
// are fixed by the deployed client software and must not change.
type Request struct {
	Operation    string `json:"operation"`
	Nome         string `json:"nome,omitempty"`
	Username     string `json:"username,omitempty"`
	Senha        string `json:"senha,omitempty"`
	Destinatario string `json:"destinatario,omitempty"`
	Assunto      string `json:"assunto,omitempty"`
	Corpo        string `json:"corpo,omitempty"`
}

// Response is the single answer written back for one request.
type Response struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Nome    string  `json:"nome,omitempty"`
	Emails  []Email `json:"emails,omitempty"`
}

// Email is the wire representation of one delivered message.
type Email struct {
	Remetente     string `json:"remetente"`
	RemetenteNome string `json:"remetente_nome"`
	Destinatario  string `json:"destinatario"`
	DataHora      string `json:"data_hora"`
	Assunto       string `json:"assunto"`
	Corpo         string `json:"corpo"`
}

// Functions

// emailFromStore converts one stored email into
// its wire representation.
func emailFromStore(e store.Email) Email {

	return Email{
		Remetente:     e.Sender,
		RemetenteNome: e.SenderName,
		Destinatario:  e.Recipient,
		DataHora:      e.Date,
		Assunto:       e.Subject,
		Corpo:         e.Body,
	}
}

// success builds a success response carrying msg.
func success(msg string) *Response {

	return &Response{
		Status:  StatusSuccess,
		Message: msg,
	}
}

// failure builds an error response carrying msg.
func failure(msg string) *Response {

	return &Response{
		Status:  StatusError,
		Message: msg,
	}
}
