package tiktok

import (
	"sort"
	"time"

	"tiktok_fetcher/internal/domain"
)

// Raw structs match the platform JSON exactly.

type challengeDetailResponse struct {
	ChallengeInfo rawChallengeInfo `json:"challengeInfo"`
}

type rawChallengeInfo struct {
	Challenge rawChallenge `json:"challenge"`
}

type rawChallenge struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type itemListResponse struct {
	ItemList []rawVideo `json:"itemList"`
	HasMore  bool       `json:"hasMore"`
	Cursor   int        `json:"cursor"`
}

type rawVideo struct {
	ID          string         `json:"id"`
	Desc        string         `json:"desc"`
	CreateTime  int64          `json:"createTime"`
	Author      rawAuthor      `json:"author"`
	AuthorStats rawAuthorStats `json:"authorStats"`
	Stats       rawStats       `json:"stats"`
	Video       rawVideoMeta   `json:"video"`
}

type rawAuthor struct {
	ID       string `json:"id"`
	UniqueID string `json:"uniqueId"`
	Nickname string `json:"nickname"`
}

type rawAuthorStats struct {
	FollowerCount int `json:"followerCount"`
}

type rawStats struct {
	PlayCount    int `json:"playCount"`
	DiggCount    int `json:"diggCount"`
	ShareCount   int `json:"shareCount"`
	CommentCount int `json:"commentCount"`
	RepostCount  int `json:"repostCount"`
}

type rawVideoMeta struct {
	Cover string `json:"cover"`
}

type commentListResponse struct {
	Comments []rawComment `json:"comments"`
	HasMore  int          `json:"has_more"`
}

type rawComment struct {
	Text      string `json:"text"`
	DiggCount int    `json:"digg_count"`
}

// parseVideo converts a raw platform video to the domain record. Engagement
// counts are snapshots at fetch time.
func parseVideo(raw rawVideo) domain.VideoRecord {
	return domain.VideoRecord{
		ID:            raw.ID,
		PostedAt:      time.Unix(raw.CreateTime, 0).UTC(),
		Description:   raw.Desc,
		AuthorID:      raw.Author.ID,
		AuthorName:    raw.Author.Nickname,
		FollowerCount: raw.AuthorStats.FollowerCount,
		ViewCount:     raw.Stats.PlayCount,
		LikeCount:     raw.Stats.DiggCount,
		ShareCount:    raw.Stats.ShareCount,
		CommentCount:  raw.Stats.CommentCount,
		RepostCount:   raw.Stats.RepostCount,
		CoverURL:      raw.Video.Cover,
	}
}

// rankComments returns the texts of the top n comments by like count
// descending. Ties keep the original API order.
func rankComments(comments []rawComment, n int) []string {
	sorted := make([]rawComment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DiggCount > sorted[j].DiggCount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]string, len(sorted))
	for i, c := range sorted {
		out[i] = c.Text
	}
	return out
}
