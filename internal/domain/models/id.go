package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID builds an opaque record identifier. The unix-millis prefix keeps IDs
// roughly ordered by creation time, the uuid suffix keeps two records created
// in the same millisecond apart.
func NewID(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), uuid.NewString()[:8])
}
