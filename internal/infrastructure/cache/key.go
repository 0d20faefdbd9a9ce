package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

const keyPrefix = "qa:"

// cacheKey embeds the business id so invalidation can purge one business by
// prefix; the query half is a hash of the normalized text so equivalent
// phrasings of the same query share an entry.
func cacheKey(businessID, query string) string {
	sum := sha256.Sum256([]byte(normalizeQuery(query)))
	return keyPrefix + businessID + ":" + hex.EncodeToString(sum[:8])
}

func businessPrefix(businessID string) string {
	return keyPrefix + businessID + ":"
}

func normalizeQuery(query string) string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return strings.Join(fields, " ")
}
