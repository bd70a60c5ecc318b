package api

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	idLength = 24
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	articleIDPrefix = "art_"
	summaryIDPrefix = "sum_"
)

var (
	articleIDPattern = regexp.MustCompile(`^art_[a-zA-Z0-9]{24}$`)
	summaryIDPattern = regexp.MustCompile(`^sum_[a-zA-Z0-9]{24}$`)
)

// NewArticleID generates a new article ID with the "art_" prefix
// followed by 24 cryptographically random alphanumeric characters.
func NewArticleID() string {
	return articleIDPrefix + randomAlphanumeric(idLength)
}

// NewSummaryID generates a new summary ID with the "sum_" prefix
// followed by 24 cryptographically random alphanumeric characters.
func NewSummaryID() string {
	return summaryIDPrefix + randomAlphanumeric(idLength)
}

// ValidateArticleID checks whether the given string is a valid article ID
// (matches "art_" + 24 alphanumeric characters).
func ValidateArticleID(id string) bool {
	return articleIDPattern.MatchString(id)
}

// ValidateSummaryID checks whether the given string is a valid summary ID
// (matches "sum_" + 24 alphanumeric characters).
func ValidateSummaryID(id string) bool {
	return summaryIDPattern.MatchString(id)
}

func randomAlphanumeric(n int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}
