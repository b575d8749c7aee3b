package otp

import (
	"crypto/rand"
	"encoding/base32"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// GenerateCode produces a random six-digit code. A fresh random secret is fed
// through the HOTP derivation so the output is uniformly distributed over the
// digit space.
func GenerateCode() (string, error) {
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}

	return hotp.GenerateCodeCustom(
		base32.StdEncoding.EncodeToString(secret),
		1,
		hotp.ValidateOpts{
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		},
	)
}
