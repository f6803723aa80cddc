package port

// MetricsPort records business counters. Labels are kept low-cardinality.
type MetricsPort interface {
	ListingSubmitted(channel string)
	WizardTransition(from, to string, ok bool)
	ImageUpload(result string)
	NotificationSent(channel string, ok bool)
}
