package errors

// ErrorType classifies an AppError
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStorage
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeBusy
)

var typeNames = [...]string{
	ErrorTypeValidation:   "validation",
	ErrorTypeNotFound:     "not_found",
	ErrorTypeStorage:      "storage",
	ErrorTypeInvalidInput: "invalid_input",
	ErrorTypeTimeout:      "timeout",
	ErrorTypeBusy:         "busy",
}

// String returns the snake_case name of the type, or "unknown"
func (et ErrorType) String() string {
	if et < 0 || int(et) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[et]
}

// userFacing reports whether errors of this type come from what the user
// entered. Their messages are shown verbatim and they are not logged.
func (et ErrorType) userFacing() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeBusy:
		return true
	}
	return false
}

// AppError is the structured error returned across package boundaries.
// Code is a stable identifier; Context carries the values that produced it.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + " (caused by: " + e.Cause.Error() + ")"
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another *AppError with the same type and code, so sentinel
// values such as &AppError{Type: ErrorTypeBusy, Code: "BUSY"} work with errors.Is
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType reports whether the error has the given type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records key=value on the error and returns it for chaining
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = map[string]interface{}{}
	}
	e.Context[key] = value
	return e
}

// GetContext looks up a value recorded with WithContext or by a constructor
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}
