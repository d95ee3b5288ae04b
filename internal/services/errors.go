package services

// InvalidInputError reports a request the caller must fix (bad content
// type, malformed body). Handlers map it to a 4xx response.
type InvalidInputError struct {
	Operation string
	Err       error
	Message   string
}

func (e *InvalidInputError) Error() string {
	return formatError(e.Operation, e.Message, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// ProviderError reports a failure of the upstream generation service,
// either when opening the stream or in the middle of it.
type ProviderError struct {
	Operation string
	Err       error
	Message   string
}

func (e *ProviderError) Error() string {
	return formatError(e.Operation, e.Message, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that text could not be extracted from a document
type ExtractionError struct {
	Operation string
	Err       error
	Message   string
}

func (e *ExtractionError) Error() string {
	return formatError(e.Operation, e.Message, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(operation string, err error, message string) *InvalidInputError {
	return &InvalidInputError{Operation: operation, Err: err, Message: message}
}

// NewProviderError creates a new provider error
func NewProviderError(operation string, err error, message string) *ProviderError {
	return &ProviderError{Operation: operation, Err: err, Message: message}
}

// NewExtractionError creates a new extraction error
func NewExtractionError(operation string, err error, message string) *ExtractionError {
	return &ExtractionError{Operation: operation, Err: err, Message: message}
}

func formatError(operation, message string, err error) string {
	if message != "" {
		return message
	}
	if err != nil {
		return operation + ": " + err.Error()
	}
	return operation + ": unknown error"
}
