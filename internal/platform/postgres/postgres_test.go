package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.Error(t, err)
}

func TestConnectOrFallback_EmptyDSN(t *testing.T) {
	db, cleanup := ConnectOrFallback(context.Background(), "", nil)
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
