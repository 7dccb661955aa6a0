package codes

// Success
var OK = New(0, "OK")

// Generic errors
var (
	Error          = New(1000, "Error", WithMessage("Something went wrong."))
	APIError       = New(1002, "ApiError", WithMessage("Api logic faced some issues processing the request."))
	MultipleErrors = New(2000, "MultipleErrors", WithMessage("Multiple errors happened."))
	Deprecated     = New(3000, "DeprecationError", WithMessage("The api was deprecated. Please, upgrade to new version of the api."))
)

// System errors
var (
	InternalError          = New(1001, "InternalError", WithMessage("An internal error occurred."))
	TemporarilyUnavailable = New(1003, "TemporarilyUnavailable")
	ParseError             = New(1100, "ParseError")
	BadRequest             = New(1101, "BadRequest")
	NotFound               = New(1104, "NotFound")
	MethodNotAllowed       = New(1105, "MethodNotAllowed")
)

// Client errors
var (
	AuthenticationError = New(1200, "AuthenticationError")
	AuthorizationError  = New(1300, "AuthorizationError")
	PermissionDenied    = New(1301, "PermissionDenied")

	UserIsNotActive          = New(1311, "UserIsNotActive")
	EmailIsNotConfirmed      = New(1312, "EmailIsNotConfirmed")
	BetaAccessRequired       = New(1313, "BetaAccessRequired")
	EmailConfirmationExpired = New(1314, "EmailConfirmationExpired")

	ConflictState     = New(1320, "ConflictState")
	AlreadyRegistered = New(1321, "AlreadyRegistered")
	AlreadyLoggedIn   = New(1322, "AlreadyLoggedIn")

	ClientUpgradeRequired = New(1350, "ClientUpgradeRequired")
)

// Validation errors
var (
	ValidationError = New(1400, "ValidationError")
	RequiredValue   = New(1451, "RequiredValue")

	NonNullableValue = New(1452, "NonNullableValue")
	InvalidValue     = New(1453, "InvalidValue")
	NonBlankValue    = New(1454, "NonBlankValue")

	MinValueLimit   = New(1455, "MinValueLimit")
	MaxValueLimit   = New(1456, "MaxValueLimit")
	MinStringLength = New(1457, "MinStringValueLimit")
	MaxStringLength = New(1458, "MaxStringValueLimit")

	MaxDigitsLimit        = New(1459, "MaxDigitsLimit")
	MaxDecimalPlacesLimit = New(1460, "MaxDecimalPlacesLimit")
	MaxWholeDigitsLimit   = New(1461, "MaxWholeDigitsLimit")

	// DatetimeExpected: a datetime was expected but a date was given.
	DatetimeExpected = New(1462, "DatetimeExpected")
	InvalidChoice    = New(1463, "InvalidChoice")
	ListExpected     = New(1464, "ListExpected")

	NoFilenameError = New(1465, "NoFilenameError")
	EmptyFileError  = New(1466, "EmptyFileError")

	InvalidImage        = New(1467, "InvalidImage")
	ObjectAlreadyExists = New(1468, "AlreadyExists")

	// DateExpected: a date was expected but a datetime was given.
	DateExpected   = New(1469, "DateExpected")
	ImmutableValue = New(1470, "ImmutableValue")
	ExpiredValue   = New(1471, "ExpiredValue")
)

// All returns the full catalog in declaration order. The list is maintained by
// hand; NewRegistry rejects it when two entries share a value or a name.
func All() []Code {
	return []Code{
		OK,

		Error,
		APIError,
		MultipleErrors,
		Deprecated,

		InternalError,
		TemporarilyUnavailable,
		ParseError,
		BadRequest,
		NotFound,
		MethodNotAllowed,

		AuthenticationError,
		AuthorizationError,
		PermissionDenied,
		UserIsNotActive,
		EmailIsNotConfirmed,
		BetaAccessRequired,
		EmailConfirmationExpired,
		ConflictState,
		AlreadyRegistered,
		AlreadyLoggedIn,
		ClientUpgradeRequired,

		ValidationError,
		RequiredValue,
		NonNullableValue,
		InvalidValue,
		NonBlankValue,
		MinValueLimit,
		MaxValueLimit,
		MinStringLength,
		MaxStringLength,
		MaxDigitsLimit,
		MaxDecimalPlacesLimit,
		MaxWholeDigitsLimit,
		DatetimeExpected,
		InvalidChoice,
		ListExpected,
		NoFilenameError,
		EmptyFileError,
		InvalidImage,
		ObjectAlreadyExists,
		DateExpected,
		ImmutableValue,
		ExpiredValue,
	}
}

// ExceptionNames maps error names that do not match a code name to their
// code. Every code is additionally reachable through its own name.
func ExceptionNames() map[string]Code {
	return map[string]Code{
		"AuthenticationFailed":        AuthenticationError,
		"NotAuthenticated":            AuthenticationError,
		"AuthorizationFailed":         AuthorizationError,
		"Exception":                   InternalError,
		"Http404":                     NotFound,
		"DoesNotExist":                NotFound,
		"ObjectDoesNotExist":          NotFound,
		"EmailConfirmationHasExpired": EmailConfirmationExpired,
		"ApiDeprecated":               Deprecated,
		"DeprecationWarning":          Deprecated,
	}
}
