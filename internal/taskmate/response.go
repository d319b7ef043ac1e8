package taskmate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Envelope is the JSON body every backend endpoint replies with.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Response mirrors one backend reply. Envelope is nil when the body was empty
// or not JSON.
type Response struct {
	OK       bool
	Status   int
	Envelope *Envelope
	Cookies  []*http.Cookie
}

// Message returns the server message, or fallback when there is none.
func (r *Response) Message(fallback string) string {
	if r == nil || r.Envelope == nil {
		return fallback
	}
	if message := strings.TrimSpace(r.Envelope.Message); message != "" {
		return message
	}
	return fallback
}

// Succeeded reports a 2xx reply whose envelope status is "success" in any
// letter case.
func (r *Response) Succeeded() bool {
	return r != nil && r.OK && r.Envelope != nil && strings.EqualFold(strings.TrimSpace(r.Envelope.Status), "success")
}

// HasData reports whether the envelope carries a non-null data field.
func (r *Response) HasData() bool {
	if r == nil || r.Envelope == nil {
		return false
	}
	data := strings.TrimSpace(string(r.Envelope.Data))
	return data != "" && data != "null" && data != "false" && data != `""`
}

// DecodeData unmarshals the envelope data into target.
func (r *Response) DecodeData(target any) error {
	if !r.HasData() {
		return errors.New("taskmate: response has no data")
	}
	return json.Unmarshal(r.Envelope.Data, target)
}
