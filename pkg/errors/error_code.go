package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation / configuration errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeInvalidOperator      ErrorCode = 105
	ErrCodeInvalidCombinator    ErrorCode = 106
	ErrCodeInvalidAction        ErrorCode = 107
	ErrCodeInvalidThreshold     ErrorCode = 108

	// Series / data errors (200-299)
	ErrCodeSeriesNotFound    ErrorCode = 200
	ErrCodeLineNotFound      ErrorCode = 201
	ErrCodeOffsetOutOfRange  ErrorCode = 202
	ErrCodeInsufficientData  ErrorCode = 203
	ErrCodeTimeframeNotFound ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302
	ErrCodeUnknownIndicatorType   ErrorCode = 303

	// Rule errors (400-499)
	ErrCodeRuleConfigError  ErrorCode = 400
	ErrCodeRuleEvaluation   ErrorCode = 401
	ErrCodeNoConditionGroup ErrorCode = 402

	// Dispatch errors (500-599)
	ErrCodeDispatchFailed     ErrorCode = 500
	ErrCodeNotifierNotFound   ErrorCode = 501
	ErrCodeNotifierInitFailed ErrorCode = 502
	ErrCodeHistoryWriteFailed ErrorCode = 503
	ErrCodeHistoryStoreClosed ErrorCode = 504

	// Market data errors (600-699)
	ErrCodeMarketDataFetchFailed ErrorCode = 600
	ErrCodeMarketDataParseFailed ErrorCode = 601
	ErrCodeInvalidInterval       ErrorCode = 602
	ErrCodeInvalidProvider       ErrorCode = 603

	// Engine errors (700-799)
	ErrCodeEngineInitFailed  ErrorCode = 700
	ErrCodeEngineNotReady    ErrorCode = 701
	ErrCodeStrategyNotLoaded ErrorCode = 702
)
