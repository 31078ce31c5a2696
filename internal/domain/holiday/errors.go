package holiday

import "errors"

var (
	ErrFetchFailed      = errors.New("failed to fetch public holidays")
	ErrUnexpectedStatus = errors.New("holiday source returned unexpected status")
	ErrInvalidPayload   = errors.New("holiday source returned invalid payload")
)
