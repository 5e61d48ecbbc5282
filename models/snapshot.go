package models

import "time"

// Snapshots are the cacheable, slow-changing half of a content item. They
// carry the resolved author display fields and media URLs so a cache hit
// needs no store round trip, and they never carry viewer-dependent fields.

type MediaRef struct {
	Url          string `json:"url"`
	DeleteHandle string `json:"delete_handle,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
}

type BlogSnapshot struct {
	BlogId      int64      `json:"id,string"`
	AuthorId    int64      `json:"author_id,string"`
	AuthorName  string     `json:"author_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Topic       string     `json:"topic"`
	Media       []MediaRef `json:"media,omitempty"`
	CreateTime  time.Time  `json:"createTime"`
	UpdateTime  time.Time  `json:"updateTime"`
}

type ForumSnapshot struct {
	ForumId     int64      `json:"id,string"`
	AuthorId    int64      `json:"author_id,string"`
	AuthorName  string     `json:"author_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Topic       string     `json:"topic"`
	Media       []MediaRef `json:"media,omitempty"`
	CreateTime  time.Time  `json:"createTime"`
	UpdateTime  time.Time  `json:"updateTime"`
}

type VideoSnapshot struct {
	VideoId     int64      `json:"id,string"`
	AuthorId    int64      `json:"author_id,string"`
	AuthorName  string     `json:"author_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Topic       string     `json:"topic"`
	Duration    int64      `json:"duration"`
	Media       []MediaRef `json:"media,omitempty"`
	CreateTime  time.Time  `json:"createTime"`
	UpdateTime  time.Time  `json:"updateTime"`
}

// CommentSnapshot is shared by every comment and reply kind; ParentId is
// the forum/video id for comments and the root comment id for replies.
type CommentSnapshot struct {
	CommentId   int64     `json:"id,string"`
	ParentId    int64     `json:"parent_id,string"`
	AuthorId    int64     `json:"author_id,string"`
	AuthorName  string    `json:"author_name"`
	Description string    `json:"description"`
	CreateTime  time.Time `json:"createTime"`
	UpdateTime  time.Time `json:"updateTime"`
}

// Stats are the always-fresh dynamic fields, re-read from the store on
// every fetch and merged over the cached snapshot.
type Stats struct {
	ViewCount int64 `json:"viewCount" db:"view_count"`
	LikeCount int64 `json:"likeCount" db:"like_count"`
	IsLiked   bool  `json:"isLiked" db:"is_liked"`
	IsSaved   bool  `json:"isSaved" db:"is_saved"`
}

type BlogDetail struct {
	BlogSnapshot
	Stats
}

type ForumDetail struct {
	ForumSnapshot
	Stats
}

type VideoDetail struct {
	VideoSnapshot
	Stats
}

type CommentDetail struct {
	CommentSnapshot
	Stats
}

// ListData is the paginated envelope handed back to callers. HasMore is a
// size heuristic: true iff the page came back full.
type ListData[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"hasMore"`
}

// AiHistoryEntry is one Q&A turn in a user's cached history list.
type AiHistoryEntry struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreateTime time.Time `json:"createTime"`
}
