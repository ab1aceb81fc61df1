package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPinDeterministic(t *testing.T) {
	assert.Equal(t, HashPin("1234"), HashPin("1234"))
	assert.NotEqual(t, HashPin("1234"), HashPin("1235"))
}

func TestHashPinIsBase64SHA256(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(HashPin("1234"))
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	// Known digest of "1234"
	assert.Equal(t, "A6xnQhbz4Vx2HuGl4lXwZ5U2I8iziLRFnhP5eNfIRvQ=", HashPin("1234"))
}

func TestVerifyPinHash(t *testing.T) {
	stored := HashPin("4321")
	assert.True(t, VerifyPinHash("4321", stored))
	assert.False(t, VerifyPinHash("0000", stored))
	assert.False(t, VerifyPinHash("4321", "corrupted-hash"))
}

func TestValidatePin(t *testing.T) {
	assert.Error(t, ValidatePin("123"))
	assert.NoError(t, ValidatePin("1234"))
	assert.NoError(t, ValidatePin("a-longer-pin-code-20"))
	assert.Error(t, ValidatePin("this-pin-is-far-too-long"))
}
