package uid

import "github.com/google/uuid"

// GenerateMatchID returns a random id for a referee match.
func GenerateMatchID() string {
	return uuid.NewString()
}
