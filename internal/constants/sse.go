package constants

const (
	SSEEventConnected        = "connected"
	SSEEventListingSubmitted = "listing_submitted"
	SSEEventListingStatus    = "listing_status_changed"

	// AdminFeed is the audience key of the back-office listing feed.
	AdminFeed = "admin"
)
