package utils

import (
	"github.com/twmb/murmur3"
	"strconv"
)

func HashString(s string) uint64 {
	hash := murmur3.New64()
	_, err := hash.Write([]byte(s))
	if err != nil {
		panic(err)
	}
	return hash.Sum64()
}

// Fingerprint renders a hash as a fixed width hex string usable in keys and headers.
func Fingerprint(hash uint64) string {
	s := strconv.FormatUint(hash, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}
