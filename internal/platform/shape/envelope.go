package shape

// Envelope message codes. Transport status is always HTTP 200 for authorized
// requests; the envelope carries the logical outcome.
const (
	CodeSuccess  = "200"
	CodeNotFound = "404"
	CodeError    = "500"

	MsgSuccess  = "Success"
	MsgNotFound = "Not Found Data"
)

// Success wraps a shaped payload under its endpoint-specific key.
func Success(key string, payload any) map[string]any {
	return map[string]any{
		"MessageCode": CodeSuccess,
		"Message":     MsgSuccess,
		key:           payload,
	}
}

// NotFound is the envelope for an empty primary result on a single-entity
// endpoint: payload null, never a half-filled structure.
func NotFound(key string) map[string]any {
	return map[string]any{
		"MessageCode": CodeNotFound,
		"Message":     MsgNotFound,
		key:           nil,
	}
}

// NotFoundList is the envelope for the listing endpoints, which report an
// empty result set as an empty array rather than null.
func NotFoundList(key string) map[string]any {
	return map[string]any{
		"MessageCode": CodeNotFound,
		"Message":     MsgNotFound,
		key:           []any{},
	}
}
