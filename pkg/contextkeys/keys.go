package contextkeys

type contextKey string

const (
	SessionIDKey contextKey = "SessionID"
	RequestIDKey contextKey = "RequestID"
)
