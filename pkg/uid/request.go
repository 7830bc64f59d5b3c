package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateRequestID returns an id used to correlate one analysis request
// across log lines and stream messages.
func GenerateRequestID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate request ID: %w", err)
	}
	return id.String(), nil
}
