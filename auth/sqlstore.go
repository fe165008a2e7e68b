package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type (
	// SQLStore keeps accounts in a sqlite database instead of the bootstrap
	// CSV file. It exists for installations where accounts are created over
	// time rather than provisioned once, the request path still only reads.
	SQLStore struct {
		db *sql.DB
	}
)

// OpenSQLStore opens (creating if needed) the account database at path.
func OpenSQLStore(ctx context.Context, path string) (*SQLStore, error) {
	connstr := fmt.Sprintf("file:%v?_journal=wal&mode=rwc", path)
	db, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open account database %v, cause %w", path, err)
	}
	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to ping account database %v, cause %w", path, err)
	}
	s := &SQLStore{db: db}
	err = s.init(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `create table if not exists accounts(account_id integer primary key autoincrement,
		login text not null unique,
		password text not null,
		salt text not null unique)`)
	if err != nil {
		return fmt.Errorf("unable to create accounts table, cause %w", err)
	}
	return nil
}

func (s *SQLStore) AccountWithName(ctx context.Context, name string) (Account, bool, error) {
	var acct Account
	err := s.db.QueryRowContext(ctx,
		`select login, password, salt from accounts where login = ?`, name).
		Scan(&acct.Username, &acct.PasswordHash, &acct.Salt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, fmt.Errorf("unable to lookup account %v, cause %w", name, err)
	}
	return acct, true, nil
}

// CreateAccount persists a freshly minted account. Only the admin CLI calls
// this, never a request handler.
func (s *SQLStore) CreateAccount(ctx context.Context, acct Account) error {
	_, err := s.db.ExecContext(ctx,
		`insert into accounts (login, password, salt) values (?, ?, ?)`,
		acct.Username, acct.PasswordHash, acct.Salt)
	if err != nil {
		return fmt.Errorf("unable to create account %v, cause %w", acct.Username, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
