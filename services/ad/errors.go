package ad

import "errors"

// Service errors mapped to HTTP statuses by the handlers.
var (
	// ErrAdNotFound covers both missing ads and ads not owned by the caller.
	ErrAdNotFound = errors.New("ad not found")
	// ErrAdBlocked is returned for owner-initiated transitions on a blocked ad.
	ErrAdBlocked = errors.New("ad blocked by admin")
	// ErrMissingPublishFields is returned when publishing without title or description.
	ErrMissingPublishFields = errors.New("missing required fields to publish")
	// ErrNoImages is returned when publishing an ad with no attached images.
	ErrNoImages = errors.New("ad requires at least one image to publish")
)
