package docsystem

import (
	"time"
)

// TagUsage is one record of the server's tag statistics feed.
type TagUsage struct {
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	UsageCount int       `json:"usageCount"`
	LastUsed   time.Time `json:"lastUsed"`
}

// TagStat is the client-side view of a tag: server usage statistics
// plus whether the tag is in the current selection set. IsSelected is
// derived state, recomputed whenever the selection changes, never
// authoritative.
type TagStat struct {
	TagUsage
	IsSelected bool `json:"isSelected"`
}
