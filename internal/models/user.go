package models

import "strings"

// UnknownUserID is the author id used when no identity is signed in at
// submission time.
const UnknownUserID = "unknown_id"

// unknownName is the placeholder used when the identity has no display name.
const unknownName = "Unknown"

// User identifies the author of a post or comment.
type User struct {
	ID        string `json:"id" firestore:"id" bson:"id"`
	Firstname string `json:"firstname" firestore:"firstname" bson:"firstname"`
	Lastname  string `json:"lastname" firestore:"lastname" bson:"lastname"`
}

// AuthorFrom derives author fields from a raw identity. The display name is
// split on the first space into first and last name; a missing display name
// falls back to the "Unknown" placeholder and a missing id to the sentinel
// unknown id.
func AuthorFrom(uid, displayName string) User {
	u := User{ID: uid, Firstname: unknownName}
	if u.ID == "" {
		u.ID = UnknownUserID
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return u
	}
	parts := strings.SplitN(displayName, " ", 2)
	u.Firstname = parts[0]
	if len(parts) > 1 {
		u.Lastname = parts[1]
	}
	return u
}
