package models

import "time"

// Post is a text post with its rating sets. A nickname appears in at most
// one of Likes/Dislikes, and the author's nickname appears in neither.
type Post struct {
	ID       int64     `json:"id"`
	Author   string    `json:"author"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
	Likes    []string  `json:"likes"`
	Dislikes []string  `json:"dislikes"`
}
