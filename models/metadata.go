package models

// Week days accepted in availability metadata.
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// Availability statuses for a single weekday.
const (
	AvailabilityAllDay      = "all_day"
	AvailabilityCustom      = "custom"
	AvailabilityUnavailable = "unavailable"
)

// Gender values stored in ad metadata.
const (
	SexFemale     = "female"
	SexMale       = "male"
	IdentityCis   = "cis"
	IdentityTrans = "trans"
)

// ContactChannels holds the optional contact handles attached to an ad or user.
type ContactChannels struct {
	Whatsapp string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Telegram string `bson:"telegram,omitempty" json:"telegram,omitempty"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
}

// LocationInfo describes where the advertised service is offered.
type LocationInfo struct {
	Region    string `bson:"region,omitempty" json:"region,omitempty"`
	City      string `bson:"city,omitempty" json:"city,omitempty"`
	Zone      string `bson:"zone,omitempty" json:"zone,omitempty"`
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
	Reference string `bson:"reference,omitempty" json:"reference,omitempty"`
}

// AvailabilityRange is a single open interval within a day, HH:MM 24h format.
type AvailabilityRange struct {
	From string `bson:"from" json:"from"`
	To   string `bson:"to" json:"to"`
}

// AvailabilitySlot is one weekday's open-hours configuration. The legacy
// From/To pair mirrors the first entry of Ranges for older clients.
type AvailabilitySlot struct {
	Day    string              `bson:"day" json:"day"`
	Status string              `bson:"status" json:"status"`
	From   string              `bson:"from,omitempty" json:"from,omitempty"`
	To     string              `bson:"to,omitempty" json:"to,omitempty"`
	Ranges []AvailabilityRange `bson:"ranges,omitempty" json:"ranges,omitempty"`
}

// RankingHints are the provider-controllable or externally computed signals
// that influence display order.
type RankingHints struct {
	BoostFeatured   float64 `bson:"boostFeatured" json:"boostFeatured"`
	FavoritesWeekly int64   `bson:"favoritesWeekly" json:"favoritesWeekly"`
	FavoritesTotal  *int64  `bson:"favoritesTotal,omitempty" json:"favoritesTotal,omitempty"`
	LastActiveAt    string  `bson:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
}

// SeedInfo marks synthetically generated demo ads.
type SeedInfo struct {
	SeedBatch string `bson:"seedBatch" json:"seedBatch"`
	IsMock    bool   `bson:"isMock" json:"isMock"`
}

// GenderInfo classifies the advertised profile. Ads created before this block
// existed carry no gender metadata and are treated as female/cis by filters.
type GenderInfo struct {
	Sex      string `bson:"sex" json:"sex"`
	Identity string `bson:"identity" json:"identity"`
}

// AdMetadata is the optional nested metadata block of an ad. Every sub-block
// is validated independently by the sanitizer before persistence.
type AdMetadata struct {
	Contacts     *ContactChannels       `bson:"contacts,omitempty" json:"contacts,omitempty"`
	Location     *LocationInfo          `bson:"location,omitempty" json:"location,omitempty"`
	Availability []AvailabilitySlot     `bson:"availability,omitempty" json:"availability,omitempty"`
	Ranking      *RankingHints          `bson:"ranking,omitempty" json:"ranking,omitempty"`
	Seed         *SeedInfo              `bson:"seed,omitempty" json:"seed,omitempty"`
	Gender       *GenderInfo            `bson:"gender,omitempty" json:"gender,omitempty"`
	Attributes   map[string]interface{} `bson:"attributes,omitempty" json:"attributes,omitempty"`
}
