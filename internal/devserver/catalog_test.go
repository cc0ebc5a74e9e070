package devserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCatalogFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	body := `
[[collections]]
key = "greens"
name = "Native Greens"

[[products]]
key = "moringa-greens"
name = "Moringa Greens"
collection = "greens"

[[products.variants]]
id = "moringa-bunch"
sku = "SKF-MOR-B"
title = "1 bunch"
price_cents = 2000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Collections, 1)
	require.Len(t, catalog.Products, 1)

	product, variant, ok := catalog.FindVariant("moringa-bunch")
	require.True(t, ok)
	require.Equal(t, "moringa-greens", product.Key)
	require.Equal(t, int64(2000), variant.PriceCents)
	require.Equal(t, "INR", variant.Currency) // default when the file omits it
}

func TestLoadCatalogRejectsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[products]]\nname = \"No Key\"\n"), 0o600))

	_, err := LoadCatalog(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing key")
}

func TestProductsByCollection(t *testing.T) {
	catalog := SeedCatalog()

	greens := catalog.ProductsByCollection("greens")
	require.Len(t, greens, 2)
	for _, p := range greens {
		require.Equal(t, "greens", p.CollectionKey)
	}

	require.Len(t, catalog.ProductsByCollection(""), len(catalog.Products))
	require.Empty(t, catalog.ProductsByCollection("no-such-collection"))
}
