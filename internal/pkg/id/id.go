package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a ULID string. Users, categories, candidates, notifications
// and broadcast messages all key on these; they sort by creation time and
// work as DynamoDB partition keys without hot-spotting.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
