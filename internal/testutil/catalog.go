// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skeinproject/skein/internal/catalog"
)

// BaseCatalogCUE is a small function catalog covering the shapes the
// tests need: monomorphic, polymorphic, higher-order, and an operator.
const BaseCatalogCUE = `
catalog: functions: {
	succ: {signature: "Int -> Int"}
	"+":  {signature: "Int -> Int -> Int", doc: "integer addition"}
	id:   {signature: "a -> a"}
	map:  {signature: "(a -> b) -> [a] -> [b]"}
	show: {signature: "a -> String"}
}
`

// LoadBaseCatalog compiles BaseCatalogCUE, failing the test on error.
func LoadBaseCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.CompileString(BaseCatalogCUE)
	require.NoError(t, err)
	return cat
}
