package document

// Version is one snapshot in the append-only history. New versions are
// prepended; the list is truncated to the retention cap on every write.
type Version struct {
	ID        string    `json:"id"`
	Timestamp int64     `json:"timestamp"`
	Label     string    `json:"label"`
	Data      *Document `json:"data"`
	Size      int64     `json:"size"`
}
