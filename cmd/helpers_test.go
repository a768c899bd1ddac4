package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "cmd.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}
