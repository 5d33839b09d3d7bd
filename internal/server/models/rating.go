package models

// Rating is a single like/dislike vote. At most one row exists per
// (PostID, Nickname) pair; IsLike is its polarity.
type Rating struct {
	PostID   int64
	Nickname string
	IsLike   bool
}
