package main

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	// Set environment variables for test
	os.Setenv("PORT", "0") // Random port
	os.Setenv("DATABASE_URL", "sqlite://:memory:")
	os.Setenv("APP_ENV", "local")

	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("APP_ENV")

	ctx, cancel := context.WithCancel(context.Background())

	// Run in a goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- Run(ctx)
	}()

	// Wait a bit for startup
	time.Sleep(500 * time.Millisecond)

	// Cancel context to stop server
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not exit in time")
	}
}

func TestRun_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)

	os.Setenv("PORT", "0")
	os.Setenv("DATABASE_URL", "sqlite://:memory:")
	os.Setenv("SESSION_BACKEND", "redis")
	os.Setenv("REDIS_URL", mr.Addr())
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("SESSION_BACKEND")
	defer os.Unsetenv("REDIS_URL")

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- Run(ctx)
	}()

	time.Sleep(500 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not exit in time")
	}
}

func TestRun_RedisRequired(t *testing.T) {
	os.Setenv("DATABASE_URL", "sqlite://:memory:")
	os.Setenv("SESSION_BACKEND", "redis")
	os.Setenv("REDIS_URL", "localhost:1")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("SESSION_BACKEND")
	defer os.Unsetenv("REDIS_URL")

	err := Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRun_ConfigError(t *testing.T) {
	os.Setenv("SESSION_BACKEND", "memcached")
	defer os.Unsetenv("SESSION_BACKEND")

	err := Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_DBError(t *testing.T) {
	os.Setenv("DATABASE_URL", "unsupported://db")
	defer os.Unsetenv("DATABASE_URL")

	ctx := context.Background()
	err := Run(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize database")
}

func TestRun_ServerError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	_, port, _ := net.SplitHostPort(ln.Addr().String())

	os.Setenv("PORT", port)
	os.Setenv("DATABASE_URL", "sqlite://:memory:")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = Run(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}
