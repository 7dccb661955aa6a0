package codes

// Validation aliases are the short, field-level failure keys attached to
// validation tokens. The renderer resolves them to catalog codes.
const (
	AliasDefault          = "default"
	AliasRequired         = "required"
	AliasNull             = "null"
	AliasInvalid          = "invalid"
	AliasBlank            = "blank"
	AliasMinLength        = "min_length"
	AliasMaxLength        = "max_length"
	AliasMaxStringLength  = "max_string_length"
	AliasMinValue         = "min_value"
	AliasMaxValue         = "max_value"
	AliasMaxDigits        = "max_digits"
	AliasMaxDecimalPlaces = "max_decimal_places"
	AliasMaxWholeDigits   = "max_whole_digits"
	AliasDate             = "date"
	AliasDatetime         = "datetime"
	AliasInvalidChoice    = "invalid_choice"
	AliasNotAList         = "not_a_list"
	AliasNoName           = "no_name"
	AliasEmpty            = "empty"
	AliasInvalidImage     = "invalid_image"
	AliasAlreadyExists    = "already_exists"
	AliasImmutable        = "immutable"
	AliasExpired          = "expired"
)

// ValidationAliases returns the alias to code table.
//
// "date" is raised by datetime fields that received a bare date, hence
// DatetimeExpected; "datetime" is the reverse. "empty" shares NoFilenameError
// with "no_name", which existing clients depend on.
func ValidationAliases() map[string]Code {
	return map[string]Code{
		AliasDefault:   ValidationError,
		AliasRequired:  RequiredValue,
		AliasNull:      NonNullableValue,
		AliasInvalid:   InvalidValue,
		AliasBlank:     NonBlankValue,
		AliasImmutable: ImmutableValue,
		AliasExpired:   ExpiredValue,

		AliasMinLength:       MinStringLength,
		AliasMaxLength:       MaxStringLength,
		AliasMaxStringLength: MaxStringLength,

		AliasMinValue: MinValueLimit,
		AliasMaxValue: MaxValueLimit,

		AliasMaxDigits:        MaxDigitsLimit,
		AliasMaxDecimalPlaces: MaxDecimalPlacesLimit,
		AliasMaxWholeDigits:   MaxWholeDigitsLimit,

		AliasDate:     DatetimeExpected,
		AliasDatetime: DateExpected,

		AliasInvalidChoice: InvalidChoice,
		AliasNotAList:      ListExpected,

		AliasNoName: NoFilenameError,
		AliasEmpty:  NoFilenameError,

		AliasInvalidImage:  InvalidImage,
		AliasAlreadyExists: ObjectAlreadyExists,
	}
}
