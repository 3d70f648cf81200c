package utils

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestHashString(t *testing.T) {
	assert.Equal(t, HashString("The/DT dog/NN"), HashString("The/DT dog/NN"))
	assert.NotEqual(t, HashString("The/DT dog/NN"), HashString("The/DT dog/VB"))
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "00000000000000ff", Fingerprint(255))
	assert.Len(t, Fingerprint(HashString("x")), 16)
}
