package group

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	inviteAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	inviteCodeLength = 6
)

// newInvitationCode generates a random fixed-length alphanumeric code.
// Uniqueness against existing groups is the caller's responsibility.
func newInvitationCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(inviteAlphabet)))

	code := make([]byte, inviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate invitation code: %w", err)
		}
		code[i] = inviteAlphabet[n.Int64()]
	}

	return string(code), nil
}
