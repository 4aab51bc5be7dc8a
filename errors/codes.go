package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates invalid flags, arguments or settings.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required setting is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates a requested asset, file or program was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Execution errors
const (
	// ErrCodeExecutionFailed indicates a child process could not be started.
	ErrCodeExecutionFailed ErrorCode = "EXECUTION_FAILED"
	// ErrCodeCommandFailed indicates a child process ran but exited unsuccessfully.
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"
	// ErrCodeCanceled indicates the run was interrupted.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeStorage indicates a failure reading or writing local files.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

// Exit statuses follow the sysexits(3) convention where one applies.
var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidInput:    64,
	ErrCodeMissingField:    64,
	ErrCodeNotFound:        66,
	ErrCodeExecutionFailed: 127,
	ErrCodeCommandFailed:   1,
	ErrCodeCanceled:        130,
	ErrCodeInternal:        70,
	ErrCodeStorage:         74,
}

// ExitCodeFor returns the process exit status associated with code.
// Unknown codes map to 1.
func ExitCodeFor(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return 1
}
