package apperror

// Category groups error codes by the layer that raised them.
type Category string

const (
	CategoryDatabase   Category = "database"
	CategoryAuth       Category = "auth"
	CategoryNetwork    Category = "network"
	CategoryValidation Category = "validation"
	CategoryBusiness   Category = "business"
	CategoryUnknown    Category = "unknown"
)

// Severity tells the presentation layer how loudly to surface an error.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Code is a classification code carried by every AppError.
type Code string

const (
	CodeDatabase            Code = "DATABASE_ERROR"
	CodeDatabaseConstraint  Code = "DATABASE_CONSTRAINT"
	CodeDatabaseUnavailable Code = "DATABASE_UNAVAILABLE"

	CodeAuthRequired   Code = "AUTH_REQUIRED"
	CodeSessionExpired Code = "SESSION_EXPIRED"

	CodeNetworkUnavailable Code = "NETWORK_UNAVAILABLE"
	CodeNetworkTimeout     Code = "NETWORK_TIMEOUT"

	CodeValidation   Code = "VALIDATION_FAILED"
	CodeInvalidInput Code = "INVALID_INPUT"

	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	CodeUnknown Code = "UNKNOWN"
)

type codeInfo struct {
	category  Category
	severity  Severity
	retryable bool
}

var codes = map[Code]codeInfo{
	CodeDatabase:            {CategoryDatabase, SeverityHigh, false},
	CodeDatabaseConstraint:  {CategoryDatabase, SeverityMedium, false},
	CodeDatabaseUnavailable: {CategoryDatabase, SeverityHigh, true},

	CodeAuthRequired:   {CategoryAuth, SeverityHigh, false},
	CodeSessionExpired: {CategoryAuth, SeverityMedium, false},

	CodeNetworkUnavailable: {CategoryNetwork, SeverityMedium, true},
	CodeNetworkTimeout:     {CategoryNetwork, SeverityMedium, true},

	CodeValidation:   {CategoryValidation, SeverityLow, false},
	CodeInvalidInput: {CategoryValidation, SeverityLow, false},

	CodeNotFound:      {CategoryBusiness, SeverityLow, false},
	CodeAlreadyExists: {CategoryBusiness, SeverityLow, false},

	CodeUnknown: {CategoryUnknown, SeverityCritical, false},
}

func (c Code) info() codeInfo {
	if info, ok := codes[c]; ok {
		return info
	}
	return codes[CodeUnknown]
}

// Category returns the code's category. Unregistered codes are unknown.
func (c Code) Category() Category { return c.info().category }

// Severity returns the code's severity.
func (c Code) Severity() Severity { return c.info().severity }

// Retryable reports whether re-issuing the failed operation may succeed.
func (c Code) Retryable() bool { return c.info().retryable }
