package domain

import "time"

// MaxTopComments is the number of top comments kept per video, ranked by
// like count descending.
const MaxTopComments = 5

// VideoRecord is one collected video with engagement metrics snapshotted at
// fetch time. ID is the platform-assigned identifier and is the dataset key:
// a later run's record replaces an earlier one with the same ID.
type VideoRecord struct {
	ID            string
	PostedAt      time.Time
	Description   string
	AuthorID      string
	AuthorName    string
	FollowerCount int
	ViewCount     int
	LikeCount     int
	ShareCount    int
	CommentCount  int
	RepostCount   int

	// ThumbnailKey is the object-storage key of the uploaded thumbnail,
	// empty when the thumbnail fetch failed.
	ThumbnailKey string

	// TopComments holds up to MaxTopComments comment texts.
	TopComments []string

	// CoverURL is the source URL of the thumbnail image. Transient, never
	// persisted by a sink.
	CoverURL string
}

// SearchTerm is a search tag with a per-term target count of videos to
// collect. Immutable for the duration of one run.
type SearchTerm struct {
	Tag    string `yaml:"tag"`
	Target int    `yaml:"target"`
}
