package media

import "errors"

var (
	// ErrMediaNotFound covers missing media and media not owned by the caller.
	ErrMediaNotFound = errors.New("media not found")
	// ErrInvalidPath rejects public ids with path traversal segments.
	ErrInvalidPath = errors.New("invalid media path")
	// ErrInvalidOrigin rejects public ids outside the caller's upload folder.
	ErrInvalidOrigin = errors.New("invalid media origin")
	// ErrUnexpectedURL rejects asset URLs not served by the configured cloud.
	ErrUnexpectedURL = errors.New("unexpected media URL")
	// ErrAlreadyRegistered signals a duplicate publicId for the same owner.
	ErrAlreadyRegistered = errors.New("media already registered")
	// ErrInvalidFolder rejects upload signature requests for foreign folders.
	ErrInvalidFolder = errors.New("invalid upload folder")
	// ErrAdNotFound signals a missing attachment target.
	ErrAdNotFound = errors.New("ad not found for media attachment")
	// ErrMediaNotOwned signals that some requested media ids do not belong to
	// the caller.
	ErrMediaNotOwned = errors.New("some media not found for current user")
	// ErrMediaLinked signals media already attached to a different ad.
	ErrMediaLinked = errors.New("media already linked to another ad")
)
