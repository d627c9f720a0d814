package repository

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis_Fail(t *testing.T) {
	// Try to connect to non-existent redis
	client, err := InitRedis("localhost:1", "", 0)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestInitRedis_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	t.Run("Address", func(t *testing.T) {
		client, err := InitRedis(mr.Addr(), "", 0)
		require.NoError(t, err)
		defer client.Close()
		assert.NotNil(t, client)
	})

	t.Run("URL", func(t *testing.T) {
		client, err := InitRedis("redis://"+mr.Addr()+"/0", "", 0)
		require.NoError(t, err)
		defer client.Close()
		assert.NotNil(t, client)
	})

	t.Run("Bad URL", func(t *testing.T) {
		_, err := InitRedis("redis://:bad:url", "", 0)
		assert.Error(t, err)
	})
}
