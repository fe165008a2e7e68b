package auth

import "fmt"

type (
	// HashingError means the hashing primitive could not run at all, which
	// only happens on the account-creation path (eg. the random source
	// failing). It never reaches a request handler.
	HashingError struct {
		cause error
	}

	// MalformedSalt marks a stored record whose salt is not valid base64.
	// On the verification path it is swallowed and treated as a mismatch.
	MalformedSalt struct {
		Salt  string
		cause error
	}
)

func (h HashingError) Error() string {
	return fmt.Sprintf("unable to hash password, cause %v", h.cause)
}

func (h HashingError) Unwrap() error {
	return h.cause
}

func (m MalformedSalt) Error() string {
	return fmt.Sprintf("salt %v is not valid base64, cause %v", m.Salt, m.cause)
}

func (m MalformedSalt) Unwrap() error {
	return m.cause
}
