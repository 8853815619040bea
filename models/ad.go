package models

import "time"

// Ad statuses. Blocked is an admin override; owners cannot set or clear it.
const (
	AdStatusDraft     = "draft"
	AdStatusPublished = "published"
	AdStatusBlocked   = "blocked"
)

// Subscription plans.
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
)

// Legacy profile types, superseded by gender metadata.
const (
	ProfileTypeChicas = "chicas"
	ProfileTypeTrans  = "trans"
)

// Ad represents one provider listing.
type Ad struct {
	ID          string      `bson:"id" json:"id"`
	Owner       string      `bson:"owner" json:"owner"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	City        string      `bson:"city,omitempty" json:"city,omitempty"`
	Services    []string    `bson:"services" json:"services"`
	Tags        []string    `bson:"tags" json:"tags"`
	Age         int         `bson:"age,omitempty" json:"age,omitempty"`
	PriceFrom   float64     `bson:"priceFrom,omitempty" json:"priceFrom,omitempty"`
	PriceTo     float64     `bson:"priceTo,omitempty" json:"priceTo,omitempty"`
	ProfileType string      `bson:"profileType,omitempty" json:"profileType,omitempty"`
	Highlighted bool        `bson:"highlighted" json:"highlighted"`
	Images      []string    `bson:"images" json:"-"`
	Status      string      `bson:"status" json:"status"`
	Plan        string      `bson:"plan" json:"plan"`
	Metadata    *AdMetadata `bson:"metadata,omitempty" json:"metadata"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}
