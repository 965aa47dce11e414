package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextForPath(path string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestIsAPIRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/courses", true},
		{"/api/auth/login", true},
		{"/api/", true},
		{"/api", false},
		{"/apix/courses", false},
		{"/dashboard", false},
		{"/", false},
	}
	for _, tt := range tests {
		if got := IsAPIRequest(contextForPath(tt.path)); got != tt.want {
			t.Errorf("IsAPIRequest(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsStaticRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/static/app.css", true},
		{"/static/js/main.js", true},
		{"/static", false},
		{"/staticfile", false},
		{"/api/static", false},
	}
	for _, tt := range tests {
		if got := IsStaticRequest(contextForPath(tt.path)); got != tt.want {
			t.Errorf("IsStaticRequest(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
