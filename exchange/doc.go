/*
Package exchange implements the request protocol of the mail exchange: the wire
types and their newline-delimited JSON framing, the per-connection session, and
the Service interface carrying one method per protocol operation.

Service methods always return exactly one response for one request and never
perform I/O themselves; the server package moves bytes. Store-level failures are
mapped onto error responses and never escape as Go errors, so a misbehaving
request can at worst terminate its own connection.

The wire vocabulary (operation names, field names, user-facing messages) is
inherited from the deployed client software and is frozen; changing any of it
breaks clients in the field.
*/
package exchange
