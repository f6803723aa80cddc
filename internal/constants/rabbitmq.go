package constants

const (
	PortalExchange     = "portal_exchange"
	PortalExchangeType = "topic"

	RoutingKeyListingSubmitted = "listing.submitted"
	QueueListingSubmitted      = "listing_submitted_notifications"

	FinalDLXExchange   = "final_dlx_exchange"
	FinalDLQ           = "final_dead_letter_queue"
	FinalDLQRoutingKey = "final_dlq"

	// Message headers used by the contract validator.
	HeaderEventType    = "event_type"
	HeaderEventVersion = "event_version"

	EventTypePropertySubmitted    = "PropertySubmittedEvent"
	EventVersionPropertySubmitted = "1.0.0"
)
