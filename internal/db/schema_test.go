package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchemaCoversRepositoryTables(t *testing.T) {
	for _, table := range []string{"public.bookings", "public.contact_messages", "public.images"} {
		assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestStatements(t *testing.T) {
	stmts := statements()
	assert.Len(t, stmts, 6)
	for _, s := range stmts {
		assert.NotContains(t, s, ";")
		assert.True(t, len(s) > 0)
	}
}

func TestPoolConfigDefaults(t *testing.T) {
	pc := PoolConfig{DSN: "postgres://localhost/transfers"}.withDefaults()
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, 5*time.Minute, pc.IdleTimeout)
	assert.Equal(t, 5*time.Second, pc.PingTimeout)

	pc = PoolConfig{MaxConns: 3, IdleTimeout: time.Minute}.withDefaults()
	assert.Equal(t, int32(3), pc.MaxConns)
	assert.Equal(t, time.Minute, pc.IdleTimeout)
}
