package auth

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/ldisk/gatehouse/internal/logutil"
)

type (
	// MemStore keeps accounts in memory, keyed by username. It is populated
	// once at startup (usually from the bootstrap CSV file) and read-only
	// afterwards, readers copy the record out under a shared lock.
	MemStore struct {
		mu       sync.RWMutex
		accounts map[string]Account
	}
)

func NewMemStore() *MemStore {
	return &MemStore{
		accounts: make(map[string]Account),
	}
}

// Put registers or replaces an account. It exists for the bootstrap path
// and for tests, the request path never writes to the store.
func (m *MemStore) Put(acct Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[acct.Username] = acct
}

func (m *MemStore) AccountWithName(_ context.Context, name string) (Account, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acct, found := m.accounts[name]
	return acct, found, nil
}

// LoadCSV fills a fresh MemStore from a stream of username,hash,salt lines.
// A line that does not parse is logged and skipped, the remaining records
// still load. The store that comes back is always usable, in the worst case
// it is just empty and every login will fail.
func LoadCSV(ctx context.Context, in io.Reader) *MemStore {
	log := logutil.GetOrDefault(ctx)
	store := NewMemStore()
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = 3
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("Error whilst importing account record")
			continue
		}
		acct := Account{
			Username:     record[0],
			PasswordHash: record[1],
			Salt:         record[2],
		}
		log.Debug().Str("username", acct.Username).Msg("Importing account")
		store.Put(acct)
	}
	return store
}

// LoadCSVFile is LoadCSV over the bootstrap file at path. A missing or
// unreadable file is not fatal: the server still starts, it just will not
// let anybody in.
func LoadCSVFile(ctx context.Context, path string) *MemStore {
	log := logutil.GetOrDefault(ctx)
	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Could not read accounts file")
		log.Warn().Msg("Continuing without loading any accounts!")
		return NewMemStore()
	}
	defer file.Close()
	return LoadCSV(ctx, file)
}
