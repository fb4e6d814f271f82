package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$argon2id$"))

	assert.True(t, CheckPassword("s3cret-pass", h))
	assert.False(t, CheckPassword("wrong-pass", h))
}

func TestHashPasswordSelfContained(t *testing.T) {
	// 每次散列 salt 不同，编码值各自独立可校验
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword("same", h1))
	assert.True(t, CheckPassword("same", h2))
}

func TestCheckPasswordMalformed(t *testing.T) {
	// 非法输入不得 panic，一律 false
	for _, enc := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$abc",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=4$c2FsdA$aGFzaA",
	} {
		assert.False(t, CheckPassword("whatever", enc), "encoded=%q", enc)
	}
}
