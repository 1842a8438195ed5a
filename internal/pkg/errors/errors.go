package errors

import "errors"

// Custom application errors
var (
	ErrPlantNotFound     = errors.New("plant not found")                  // No user_plants row for the given ID
	ErrSpeciesNotFound   = errors.New("species not found")                // No catalog row for the given name or ID
	ErrSessionNotFound   = errors.New("scan session not found")           // No scan session row for the given ID
	ErrProfileNotFound   = errors.New("user profile not found")           // No profile row for the given user
	ErrForbidden         = errors.New("resource belongs to another user") // Ownership check failed
	ErrInvalidInterval   = errors.New("invalid watering interval")        // interval_days must be 0 (unset) or >= 1
	ErrInvalidArgument   = errors.New("invalid argument")                 // Malformed request input
	ErrDatabaseOperation = errors.New("database operation failed")        // Generic database error
	ErrScheduling        = errors.New("reminder scheduling failed")       // Local timer registration error
	ErrPushGateway       = errors.New("push gateway request failed")      // Batch push submit error
	ErrPlantAPI          = errors.New("plant data api request failed")    // Enrichment lookup error
	ErrGenerative        = errors.New("generative api request failed")    // Recommendation model error
	ErrUploadCorrupt     = errors.New("artifact upload corrupt")          // Checksum or size mismatch on finalize
	ErrInternalServer    = errors.New("internal server error")            // Generic internal error
)
