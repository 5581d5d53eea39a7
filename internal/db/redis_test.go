package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()

	client, err := ConnectRedis(context.Background(), addr)
	require.NoError(t, err)
	defer client.Close()

	srv.Close()
	_, err = ConnectRedis(context.Background(), addr)
	require.Error(t, err)
}
