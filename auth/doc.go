// Package auth holds the credential records and the session registry that
// gate access to the private side of a gatehouse server.
//
// The scheme is deliberately boring: every account carries its own random
// salt, the password is stretched with Argon2id into a PHC-encoded string,
// and verification simply recomputes that string from the candidate password
// and compares. The password itself is never stored anywhere.
//
// Every failure on the verification path (unknown user, corrupted record,
// store hiccup, wrong password) collapses into a plain false. A client
// probing the server cannot tell which of those happened, so usernames
// cannot be enumerated through error messages or status codes.
//
// Two things are worth knowing before deploying this:
//
// Credentials travel as plain request headers. There is no key exchange and
// no transport security at this layer, so anything in front of the server
// (or the lack of it) decides whether passwords cross the wire in the clear.
// Terminate TLS before traffic reaches gatehouse.
//
// Sessions never expire. A token issued after a login stays valid until the
// process restarts, and the registry only ever grows. That keeps the design
// small but it is an unbounded resource, so restart the process once in a
// while if it faces the open internet.
package auth
