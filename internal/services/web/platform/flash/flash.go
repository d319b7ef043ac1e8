// Package flash carries a one-time notice across a redirect in a short-lived
// cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
)

// Kind selects the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

const (
	maxTextLength = 300
	lifetime      = 5 * time.Minute
)

// Notice is one pending message. Text is backend wording shown verbatim;
// without it Key is localized at render time.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key,omitempty"`
	Text string `json:"text,omitempty"`
}

// Success is a success notice for a catalog key.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Error is an error notice. A non-empty text wins over key.
func Error(key, text string) Notice {
	return Notice{Kind: KindError, Key: key, Text: text}
}

// clean trims n, clips Text to maxTextLength bytes on a rune boundary and
// reports whether n is worth showing.
func (n Notice) clean() (Notice, bool) {
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	n.Key = strings.TrimSpace(n.Key)
	n.Text = strings.TrimSpace(n.Text)
	if len(n.Text) > maxTextLength {
		cut := maxTextLength
		for cut > 0 && !utf8.RuneStart(n.Text[cut]) {
			cut--
		}
		n.Text = n.Text[:cut]
	}
	if n.Kind != KindSuccess && n.Kind != KindError {
		return Notice{}, false
	}
	return n, n.Key != "" || n.Text != ""
}

// Write stores n for the next page render. Invalid notices are dropped.
func Write(w http.ResponseWriter, r *http.Request, jar cookies.Jar, n Notice) {
	n, ok := n.clean()
	if !ok {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	jar.Set(w, r, cookies.FlashName, base64.RawURLEncoding.EncodeToString(payload), time.Now().Add(lifetime))
}

// ReadAndClear returns the pending notice and expires its cookie. A
// malformed cookie is cleared too.
func ReadAndClear(w http.ResponseWriter, r *http.Request, jar cookies.Jar) (Notice, bool) {
	raw, ok := cookies.Read(r, cookies.FlashName)
	if !ok {
		return Notice{}, false
	}
	jar.Clear(w, r, cookies.FlashName)

	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(payload, &n); err != nil {
		return Notice{}, false
	}
	return n.clean()
}
