// Package password generates random secrets suitable for credential
// rotation. All randomness is drawn from crypto/rand.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

// Options controls the length and character classes of generated secrets.
// Every enabled class is guaranteed to appear at least once.
type Options struct {
	Length  int
	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool
}

// DefaultOptions matches the reset flow's requirements: 16 characters with
// letters, digits and symbols.
func DefaultOptions() Options {
	return Options{
		Length:  16,
		Lower:   true,
		Upper:   true,
		Digits:  true,
		Symbols: true,
	}
}

// Generate produces a random secret honoring opts. It fails if no character
// class is enabled or the requested length cannot fit one character from
// each enabled class.
func Generate(opts Options) (string, error) {
	classes := make([]string, 0, 4)
	if opts.Lower {
		classes = append(classes, lowerChars)
	}
	if opts.Upper {
		classes = append(classes, upperChars)
	}
	if opts.Digits {
		classes = append(classes, digitChars)
	}
	if opts.Symbols {
		classes = append(classes, symbolChars)
	}

	if len(classes) == 0 {
		return "", fmt.Errorf("at least one character class must be enabled")
	}
	if opts.Length < len(classes) {
		return "", fmt.Errorf("length %d cannot include %d character classes", opts.Length, len(classes))
	}

	alphabet := ""
	for _, class := range classes {
		alphabet += class
	}

	secret := make([]byte, opts.Length)

	// One character from each enabled class, the rest from the full alphabet.
	for i, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		secret[i] = c
	}
	for i := len(classes); i < opts.Length; i++ {
		c, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		secret[i] = c
	}

	// Fisher-Yates shuffle so the guaranteed characters are not predictable
	// by position.
	for i := len(secret) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		secret[i], secret[j] = secret[j], secret[i]
	}

	return string(secret), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}
