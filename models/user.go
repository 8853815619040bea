package models

import "time"

// User roles.
const (
	RoleAdmin    = "admin"
	RoleAgency   = "agency"
	RoleProvider = "provider"
	RoleCustomer = "customer"
)

// User is a registered account. Password and RefreshTokenHash never leave the
// service layer.
type User struct {
	ID               string           `bson:"id" json:"id"`
	Email            string           `bson:"email" json:"email"`
	Password         string           `bson:"password" json:"-"`
	Role             string           `bson:"role" json:"role"`
	Name             string           `bson:"name,omitempty" json:"name,omitempty"`
	RefreshTokenHash string           `bson:"refreshTokenHash,omitempty" json:"-"`
	Contacts         *ContactChannels `bson:"contacts,omitempty" json:"contacts,omitempty"`
	AvatarURL        string           `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	AvatarPublicID   string           `bson:"avatarPublicId,omitempty" json:"avatarPublicId,omitempty"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time        `bson:"updatedAt" json:"updatedAt"`
}
