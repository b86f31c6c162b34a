package ledger

import (
	"fmt"
	"langtrack/internal/models"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// UIDFunc produces a new entry uid.
type UIDFunc func() string

// NewUID returns a random UUID, or a prefixed nanoid when the system random
// source fails.
func NewUID() string {
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	if id, err := gonanoid.New(8); err == nil {
		return fmt.Sprintf("entry-%d-%s", time.Now().UnixMilli(), id)
	}
	return "entry-" + strconv.FormatInt(time.Now().UnixNano(), 36)
}

// EnsureUID assigns a uid to e when it has none. It reports whether e changed.
func EnsureUID(e *models.VideoLogEntry, gen UIDFunc) bool {
	if e == nil || strings.TrimSpace(e.UID) != "" {
		return false
	}
	e.UID = gen()
	return true
}

// MigrateUIDs gives every entry in log a uid and reports whether any was missing.
func MigrateUIDs(log models.VideoLog, gen UIDFunc) bool {
	changed := false
	for _, entries := range log {
		for _, e := range entries {
			if EnsureUID(e, gen) {
				changed = true
			}
		}
	}
	return changed
}
