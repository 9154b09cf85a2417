package booking

import (
	"crypto/rand"
	"fmt"
)

const (
	CodePrefix   = "BK-"
	CodeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// maxUnbiased is the largest multiple of len(codeAlphabet) that fits in a byte
const maxUnbiased = 256 - 256%len(codeAlphabet)

// GenerateCode returns a display code such as BK-7Q2XKD. Characters are drawn
// uniformly from A-Z0-9.
func GenerateCode() (string, error) {
	out := make([]byte, 0, CodeLength)
	buf := make([]byte, CodeLength*2)
	for len(out) < CodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate booking code: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(out) == CodeLength {
				break
			}
		}
	}
	return CodePrefix + string(out), nil
}

// ValidCode reports whether s has the BK-XXXXXX shape
func ValidCode(s string) bool {
	if len(s) != len(CodePrefix)+CodeLength || s[:len(CodePrefix)] != CodePrefix {
		return false
	}
	for _, c := range s[len(CodePrefix):] {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
