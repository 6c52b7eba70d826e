package diagnostics

// Diagnostic codes for the colang compiler
const (
	// Lexer errors (L prefix)
	ErrUnexpectedCharacter = "L0001"
	ErrUnterminatedString  = "L0002"

	// Parser errors (P prefix)
	ErrMissingToken      = "P0001"
	ErrUnexpectedToken   = "P0002"
	ErrMissingClosing    = "P0003"
	ErrInvalidExpression = "P0004"
	ErrIllegalSpecifier  = "P0005"

	// Semantic errors (T prefix)
	ErrRedeclaredSymbol   = "T0001"
	ErrUnknownType        = "T0002"
	ErrUndefinedSymbol    = "T0003"
	ErrNoMatchingOverload = "T0004"
	ErrAmbiguousCall      = "T0005"
	ErrTypeMismatch       = "T0006"
	ErrNotAssignable      = "T0007"
	ErrNotCallable        = "T0008"
	ErrMethodNotFound     = "T0009"

	// Control flow errors (C prefix)
	ErrMissingReturn      = "C0001"
	ErrReturnWithoutValue = "C0002"
	ErrReturnValueInVoid  = "C0003"

	// Warnings (W prefix)
	WarnUnreachableCode    = "W0001"
	WarnDuplicateSpecifier = "W0002"
	WarnUnusedSymbol       = "W0003"
)
