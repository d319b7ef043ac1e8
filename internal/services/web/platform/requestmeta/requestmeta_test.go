package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postRequest(target string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return req
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		req    *http.Request
		policy SchemePolicy
		want   bool
	}{
		{
			name: "origin matches",
			req:  postRequest("https://taskmate.test/app/teams/", map[string]string{"Origin": "https://taskmate.test"}),
			want: true,
		},
		{
			name: "referer matches when origin absent",
			req:  postRequest("https://taskmate.test/logout", map[string]string{"Referer": "https://taskmate.test/app/profile/"}),
			want: true,
		},
		{
			name: "explicit default port matches",
			req:  postRequest("https://taskmate.test/logout", map[string]string{"Origin": "https://taskmate.test:443"}),
			want: true,
		},
		{
			name: "different host",
			req:  postRequest("https://taskmate.test/logout", map[string]string{"Origin": "https://evil.test"}),
			want: false,
		},
		{
			name: "different port",
			req:  postRequest("http://localhost:8080/logout", map[string]string{"Origin": "http://localhost:3000"}),
			want: false,
		},
		{
			name: "scheme mismatch",
			req:  postRequest("https://taskmate.test/logout", map[string]string{"Origin": "http://taskmate.test"}),
			want: false,
		},
		{
			name: "no proof",
			req:  postRequest("https://taskmate.test/logout", nil),
			want: false,
		},
		{
			name: "untrusted forwarded proto ignored",
			req: postRequest("https://taskmate.test/logout", map[string]string{
				"Origin":            "http://taskmate.test",
				"X-Forwarded-Proto": "http",
			}),
			want: false,
		},
		{
			name: "trusted forwarded proto used",
			req: postRequest("https://taskmate.test/logout", map[string]string{
				"Origin":            "http://taskmate.test",
				"X-Forwarded-Proto": "http",
			}),
			policy: SchemePolicy{TrustForwardedProto: true},
			want:   true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.policy.SameOrigin(tc.req); got != tc.want {
				t.Fatalf("SameOrigin() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if (SchemePolicy{}).IsHTTPS(plain) {
		t.Fatal("IsHTTPS(plain) = true, want false")
	}
	withTLS := httptest.NewRequest(http.MethodGet, "/", nil)
	withTLS.TLS = &tls.ConnectionState{}
	if !(SchemePolicy{}).IsHTTPS(withTLS) {
		t.Fatal("IsHTTPS(tls) = false, want true")
	}
	forwarded := httptest.NewRequest(http.MethodGet, "/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if (SchemePolicy{}).IsHTTPS(forwarded) {
		t.Fatal("IsHTTPS(untrusted forwarded) = true, want false")
	}
	if !(SchemePolicy{TrustForwardedProto: true}).IsHTTPS(forwarded) {
		t.Fatal("IsHTTPS(trusted forwarded) = false, want true")
	}
	if (SchemePolicy{}).IsHTTPS(nil) {
		t.Fatal("IsHTTPS(nil) = true")
	}
}
