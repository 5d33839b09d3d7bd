package services

// Status is the closed set of outcomes a service operation can produce.
// Expected failures are returned by value as one of these members, never as
// errors; only the transport layer decides how to present them to clients.
type Status int

const (
	StatusOK Status = iota

	// StatusUnknownError covers unexpected storage or crypto faults. The
	// underlying error is not propagated past the service boundary.
	StatusUnknownError

	// Validation failures.
	StatusInvalidNickname
	StatusInvalidPost
	StatusIncorrectID
	StatusIncorrectLimit

	// Authentication failures.
	StatusInvalidCredentials
	StatusTokenExpired
	StatusInvalidToken
	StatusIPMismatch

	// Authorization failures.
	StatusNoAccess

	// State conflicts.
	StatusUserExists
	StatusMaxSessions

	// Missing referents.
	StatusUserNotFound
	StatusPostNotFound
)

var statusNames = map[Status]string{
	StatusOK:                 "OK",
	StatusUnknownError:       "UNKNOWN_ERROR",
	StatusInvalidNickname:    "INVALID_NICKNAME",
	StatusInvalidPost:        "INVALID_POST",
	StatusIncorrectID:        "INCORRECT_ID",
	StatusIncorrectLimit:     "INCORRECT_LIMIT",
	StatusInvalidCredentials: "INVALID_CREDENTIALS",
	StatusTokenExpired:       "TOKEN_EXPIRED",
	StatusInvalidToken:       "INVALID_TOKEN",
	StatusIPMismatch:         "IP_MISMATCH",
	StatusNoAccess:           "NO_ACCESS",
	StatusUserExists:         "USER_EXISTS",
	StatusMaxSessions:        "MAX_SESSIONS",
	StatusUserNotFound:       "USER_NOT_FOUND",
	StatusPostNotFound:       "POST_NOT_FOUND",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN_ERROR"
}
