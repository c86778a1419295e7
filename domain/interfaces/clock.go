package interfaces

import (
	"context"
	"time"
)

// Clock abstracts time for the polling wait
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done
	Sleep(ctx context.Context, d time.Duration) error
}
