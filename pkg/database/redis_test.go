package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/config"
)

func TestNewRedisClient_EmptyHostDisablesCaching(t *testing.T) {
	client, err := NewRedisClient(&config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
