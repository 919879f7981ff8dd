package dbbadger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDbManager(t *testing.T) *DbManager {
	t.Helper()

	dbManager, err := NewDbManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(dbManager.Close)
	return dbManager
}
