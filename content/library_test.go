package content

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempLibrary(t *testing.T) (*Library, func()) {
	dir, err := ioutil.TempDir("", "gatehouse-tests")
	if err != nil {
		t.Fatal(err)
	}
	err = ioutil.WriteFile(filepath.Join(dir, "index.html"), []byte(`<h1>it works</h1>`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = ioutil.WriteFile(filepath.Join(filepath.Dir(dir), "outside.txt"), []byte(`secret`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	lib, err := OpenLibrary(dir)
	if err != nil {
		t.Fatal(err)
	}
	return lib, func() {
		os.Remove(filepath.Join(filepath.Dir(dir), "outside.txt"))
		err := os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

func TestAsset(t *testing.T) {
	ctx := context.Background()
	lib, cleanup := tempLibrary(t)
	defer cleanup()

	buf, mt, etag, err := lib.Asset(ctx, "/index.html")
	require.NoError(t, err)
	require.Equal(t, `<h1>it works</h1>`, string(buf))
	require.Contains(t, mt, "text/html")
	require.NotEmpty(t, etag)

	// same content, same etag (the second read comes from the cache)
	_, _, again, err := lib.Asset(ctx, "/index.html")
	require.NoError(t, err)
	require.Equal(t, etag, again)
}

func TestAssetMissing(t *testing.T) {
	ctx := context.Background()
	lib, cleanup := tempLibrary(t)
	defer cleanup()

	_, _, _, err := lib.Asset(ctx, "/missing.html")
	var notFound AssetNotFound
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "/missing.html", notFound.Path)
}

func TestAssetCannotEscapeRoot(t *testing.T) {
	ctx := context.Background()
	lib, cleanup := tempLibrary(t)
	defer cleanup()

	_, _, _, err := lib.Asset(ctx, "/../outside.txt")
	var notFound AssetNotFound
	require.True(t, errors.As(err, &notFound))
}
