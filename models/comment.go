package models

import "time"

// Comment belongs to a published ad and an author user.
type Comment struct {
	ID        string    `bson:"id" json:"id"`
	Ad        string    `bson:"ad" json:"ad"`
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
