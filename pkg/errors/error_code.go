package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidMultiplier    ErrorCode = 111
	ErrCodeInvalidLength        ErrorCode = 116
	ErrCodeMissingColumn        ErrorCode = 120
	ErrCodeEmptySeries          ErrorCode = 121

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Feature errors (400-499)
	ErrCodeFeatureAssembly    ErrorCode = 400
	ErrCodeUnknownVariant     ErrorCode = 401
	ErrCodeProfileNotFitted   ErrorCode = 402
	ErrCodeDatasetWriteFailed ErrorCode = 403

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidTimespan       ErrorCode = 703
	ErrCodeInvalidProvider       ErrorCode = 704
	ErrCodeRateLimited           ErrorCode = 705
	ErrCodeAPIError              ErrorCode = 706

	// Artifact errors (900-999)
	ErrCodeArtifactFailed  ErrorCode = 900
	ErrCodeArtifactInvalid ErrorCode = 901
)
