// Package models holds client-side representations of API payloads.
package models

import "time"

// Post mirrors the post payload returned by the server API.
type Post struct {
	ID       int64     `json:"id"`
	Author   string    `json:"author"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
	Likes    []string  `json:"likes"`
	Dislikes []string  `json:"dislikes"`
}
