/*
Package errs provides the application error type and its code constants.

Codes identify a failure inside the server logs; the message is what the browser sees.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrFormParseFailed indicates failure to parse URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006
)

// 3xxx: Session and Security Errors
const (
	// ErrSessionStore indicates the session store could not read or write a session.
	ErrSessionStore = 3002

	// ErrLogoutFailed indicates the session could not be destroyed on logout.
	ErrLogoutFailed = 3003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrPageRender indicates an HTML template failed to execute.
	ErrPageRender = 5001
)
