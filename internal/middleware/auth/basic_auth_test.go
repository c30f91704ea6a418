package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func protected(user, pass string) http.Handler {
	return BasicAuth(user, pass)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
}

func TestBasicAuth(t *testing.T) {
	tests := []struct {
		name       string
		configUser string
		configPass string
		setAuth    func(r *http.Request)
		want       int
	}{
		{"valid", "admin", "s3cret", func(r *http.Request) { r.SetBasicAuth("admin", "s3cret") }, http.StatusTeapot},
		{"wrong password", "admin", "s3cret", func(r *http.Request) { r.SetBasicAuth("admin", "nope") }, http.StatusUnauthorized},
		{"wrong user", "admin", "s3cret", func(r *http.Request) { r.SetBasicAuth("root", "s3cret") }, http.StatusUnauthorized},
		{"no header", "admin", "s3cret", func(r *http.Request) {}, http.StatusUnauthorized},
		{"bearer header", "admin", "s3cret", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized},
		{"unconfigured", "", "", func(r *http.Request) { r.SetBasicAuth("", "") }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
			tt.setAuth(req)
			rr := httptest.NewRecorder()

			protected(tt.configUser, tt.configPass).ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="Admin Area"`, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
