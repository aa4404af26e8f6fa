package store

import "github.com/google/uuid"

// NewID returns prefix-<uuid> using UUIDv7, which embeds a timestamp in
// the most significant bits so ids sort by creation time.
func NewID(prefix string) string {
	return prefix + "-" + uuid.Must(uuid.NewV7()).String()
}
