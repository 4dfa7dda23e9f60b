/*
Package store keeps the exchange's entire state in process memory: the
credential records of all registered users and one mailbox per user. A single
mutex serializes every access to both, which makes registration's
check-then-insert and drain's read-then-clear atomic. State does not survive a
process restart.
*/
package store
