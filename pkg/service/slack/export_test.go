package slack

// Export internal functions and types for testing
var (
	// WithCacheTTL is exported for testing
	TestWithCacheTTL = WithCacheTTL

	// ToAttachment is exported for testing attachment conversion
	ToAttachment = toAttachment
)
