package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	f := NewFile(path, nil)

	in := Projection{
		CartID: "cart-1",
		Lines: []domain.CartLine{
			{ID: "L1", VariantID: "v1", Title: "Country Tomato", UnitPriceCents: 5000, Quantity: 2},
		},
		TotalCents:      10000,
		Count:           2,
		User:            &domain.Customer{ID: "c1", Email: "a@b.c"},
		AccessToken:     "tok",
		IsAuthenticated: true,
	}
	require.NoError(t, f.Save(in))

	out, ok, err := f.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileLoadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "absent.json"), nil)

	_, ok, err := f.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileLoadCorruptTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f := NewFile(path, nil)
	_, ok, err := f.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f := NewFile(path, nil)

	require.NoError(t, f.Save(Projection{CartID: "cart-1", Count: 2}))
	require.NoError(t, f.Save(Projection{}))

	out, ok, err := f.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, out.CartID)
	require.Zero(t, out.Count)
}
