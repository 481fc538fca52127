package recordclient

import (
	"encoding/json"
	"fmt"
)

// TransportError is a store response with an error status and a decodable
// JSON body.
type TransportError struct {
	Status        int
	ServerMessage string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("record store responded %d: %s", e.Status, e.ServerMessage)
}

// NetworkError covers an unreachable store and responses that cannot be
// decoded. Status is zero when no response arrived.
type NetworkError struct {
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that a fetch for one record yielded no data.
type NotFoundError struct {
	Resource string
	ID       int64
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ResolveMessage picks the human readable text of a decoded error body: a
// JSON string verbatim, else "message", else "error", else the body
// re-serialised.
func ResolveMessage(body any) string {
	switch v := body.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := v["error"].(string); ok && msg != "" {
			return msg
		}
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprint(body)
	}
	return string(raw)
}
