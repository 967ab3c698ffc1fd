package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown  ErrorCode = 1
	ErrCodeCanceled ErrorCode = 2

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrder         ErrorCode = 102
	ErrCodeInsufficientData     ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound  ErrorCode = 200
	ErrCodeQueryFailed   ErrorCode = 201
	ErrCodeWriterFailed  ErrorCode = 202
	ErrCodeSessionFailed ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Trading errors (500-599)
	ErrCodeOrderFailed          ErrorCode = 500
	ErrCodePositionAlreadyOpen  ErrorCode = 501
	ErrCodePositionNotOpen      ErrorCode = 502
	ErrCodeBalanceQueryFailed   ErrorCode = 503
	ErrCodeLedgerNoEntryBalance ErrorCode = 504

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeMarketDataEmpty       ErrorCode = 702
	ErrCodeInvalidProvider       ErrorCode = 703

	// Exchange connectivity errors (900-999). These stop the control loop.
	ErrCodeAuthenticationFailed ErrorCode = 900
	ErrCodeConnectivityFailed   ErrorCode = 901

	// Notification errors (1000-1099)
	ErrCodeNotificationFailed ErrorCode = 1000
)

// fatalCodes are the codes that cannot be recovered by retrying the next cycle.
var fatalCodes = map[ErrorCode]struct{}{
	ErrCodeInvalidConfiguration: {},
	ErrCodeAuthenticationFailed: {},
	ErrCodeConnectivityFailed:   {},
}
