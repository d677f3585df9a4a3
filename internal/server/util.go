package server

import "crypto/rand"

// newJoinCode returns a short code phones can type. The alphabet skips
// easily-confused characters (0/O, 1/I).
func newJoinCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

func floatPtr(value float64) *float64 {
	return &value
}
