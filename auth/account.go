package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ldisk/gatehouse/internal/logutil"
	"golang.org/x/crypto/argon2"
)

// Cost parameters for Argon2id. Creation and verification must agree on
// these, otherwise no password will ever verify again, so they are fixed
// at compile time rather than configurable.
const (
	hashTime    = 2
	hashMemory  = 19 * 1024
	hashThreads = 1
	hashLen     = 32

	saltLen = 16
)

type (
	// Account is one credential record: the unique login name, the
	// PHC-encoded Argon2id hash and the per-account salt that produced it.
	// Accounts are created once by an operator and never change afterwards.
	Account struct {
		Username     string
		PasswordHash string
		Salt         string
	}

	// Store is the capability the verification path needs from whatever
	// keeps the accounts. The bool reports whether the account exists,
	// lookups must be safe under any number of concurrent callers.
	Store interface {
		AccountWithName(ctx context.Context, name string) (Account, bool, error)
	}
)

// NewAccount creates a credential record for username with a fresh random
// salt. It only produces the value, writing it to a store or to the
// bootstrap file is up to the caller.
func NewAccount(username, password string) (Account, error) {
	var salt [saltLen]byte
	_, err := rand.Read(salt[:])
	if err != nil {
		return Account{}, HashingError{cause: err}
	}
	encSalt := base64.RawStdEncoding.EncodeToString(salt[:])
	hash, err := hashPassword([]byte(password), encSalt)
	if err != nil {
		return Account{}, HashingError{cause: err}
	}
	return Account{
		Username:     username,
		PasswordHash: hash,
		Salt:         encSalt,
	}, nil
}

// String renders the record as a single CSV line (username,hash,salt),
// ready to be appended to the bootstrap accounts file. The hash goes
// through a csv writer because the PHC parameter block contains commas.
func (a Account) String() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write([]string{a.Username, a.PasswordHash, a.Salt})
	w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// Verify reports whether password matches the account stored under username.
// Missing accounts, corrupted records and store errors all look exactly like
// a wrong password to the caller. Verify never mutates the store and does
// the expensive hashing without holding any shared lock.
func Verify(ctx context.Context, store Store, username, password string) bool {
	log := logutil.GetOrDefault(ctx)
	acct, found, err := store.AccountWithName(ctx, username)
	if err != nil {
		log.Error().Err(err).Msg("Unexpected error when looking up account")
		return false
	}
	if !found {
		return false
	}
	hash, err := hashPassword([]byte(password), acct.Salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(acct.PasswordHash)) == 1
}

// hashPassword stretches password with the account salt and encodes the
// result as a PHC string, parameters included, so the stored value is
// self-describing.
func hashPassword(password []byte, encSalt string) (string, error) {
	salt, err := base64.RawStdEncoding.DecodeString(encSalt)
	if err != nil {
		return "", MalformedSalt{Salt: encSalt, cause: err}
	}
	digest := argon2.IDKey(password, salt, hashTime, hashMemory, hashThreads, hashLen)
	return fmt.Sprintf("$argon2id$v=%v$m=%v,t=%v,p=%v$%v$%v",
		argon2.Version, hashMemory, hashTime, hashThreads,
		encSalt, base64.RawStdEncoding.EncodeToString(digest)), nil
}
