package focus

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// DateID encodes a Unix timestamp in base 36.
func DateID(ts int64) string {
	return strconv.FormatInt(ts, 36)
}

// RandID returns 4 random base-36 characters.
func RandID() string {
	buf := make([]byte, 4)
	limit := big.NewInt(int64(len(base36)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err)
		}
		buf[i] = base36[n.Int64()]
	}
	return string(buf)
}
