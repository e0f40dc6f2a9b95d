package services

import (
	"crypto/rand"
	"math/big"
)

const pinCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const pinLength = 6

// GeneratePinCode membuat kode PIN 6 karakter alfanumerik.
func GeneratePinCode() string {
	code := make([]byte, pinLength)
	max := big.NewInt(int64(len(pinCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// rand.Reader hampir tidak mungkin gagal; fallback ke karakter pertama
			code[i] = pinCharset[0]
			continue
		}
		code[i] = pinCharset[n.Int64()]
	}
	return string(code)
}
