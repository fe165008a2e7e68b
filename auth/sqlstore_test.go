package auth

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempSQLStore(ctx context.Context, t *testing.T) (*SQLStore, func()) {
	dir, err := ioutil.TempDir("", "gatehouse-tests")
	if err != nil {
		t.Fatal(err)
	}
	store, err := OpenSQLStore(ctx, filepath.Join(dir, "accounts.db"))
	if err != nil {
		t.Fatal(err)
	}
	return store, func() {
		err := store.Close()
		if err != nil {
			t.Log("unable to close account database", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempSQLStore(ctx, t)
	defer cleanup()

	acct, err := NewAccount("bob", "hunter2")
	require.NoError(t, err)
	require.NoError(t, store.CreateAccount(ctx, acct))

	got, found, err := store.AccountWithName(ctx, "bob")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, acct, got)

	_, found, err = store.AccountWithName(ctx, "nobody")
	require.NoError(t, err)
	require.False(t, found)

	require.True(t, Verify(ctx, store, "bob", "hunter2"))
	require.False(t, Verify(ctx, store, "bob", "wrong"))
}

func TestSQLStoreDuplicateLogin(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempSQLStore(ctx, t)
	defer cleanup()

	acct, err := NewAccount("bob", "hunter2")
	require.NoError(t, err)
	require.NoError(t, store.CreateAccount(ctx, acct))

	other, err := NewAccount("bob", "different")
	require.NoError(t, err)
	require.Error(t, store.CreateAccount(ctx, other))
}
