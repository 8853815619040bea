package models

import "time"

// Media is an uploaded image asset, owned by a user and optionally linked to
// one ad. The asset itself lives at the external provider under PublicID.
type Media struct {
	ID        string    `bson:"id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	URL       string    `bson:"url" json:"url"`
	PublicID  string    `bson:"publicId" json:"publicId"`
	Provider  string    `bson:"provider" json:"provider"`
	Format    string    `bson:"format,omitempty" json:"format,omitempty"`
	Bytes     int64     `bson:"bytes,omitempty" json:"bytes,omitempty"`
	Width     int       `bson:"width,omitempty" json:"width,omitempty"`
	Height    int       `bson:"height,omitempty" json:"height,omitempty"`
	Kind      string    `bson:"kind" json:"kind"`
	Ad        string    `bson:"ad,omitempty" json:"ad,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
