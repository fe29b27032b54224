package usecase

// FormatSnipe is exported for testing
var FormatSnipe = formatSnipe
