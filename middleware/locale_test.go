package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ad_generator_go/config"
	"ad_generator_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runLocale(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Locale(&config.Config{Environment: "development"})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	return c, rec
}

func TestLocale(t *testing.T) {
	t.Run("PriorityQueryParam", func(t *testing.T) {
		c, rec := runLocale(t, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

		assert.Equal(t, "en", c.Get("locale"))
		assert.Equal(t, "en", i18n.GetLocale(c.Request().Context()))
		found := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "lang" {
				assert.Equal(t, "en", cookie.Value)
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("UnsupportedQueryParamFallsBack", func(t *testing.T) {
		c, _ := runLocale(t, httptest.NewRequest(http.MethodGet, "/?lang=xx", nil))
		assert.Equal(t, "ru", c.Get("locale"))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		req.Header.Set("Accept-Language", "ru-RU")
		c, _ := runLocale(t, req)
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "en-GB,en;q=0.9,ru;q=0.5")
		c, _ := runLocale(t, req)
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		c, _ := runLocale(t, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "ru", c.Get("locale"))
		assert.Equal(t, "ru", i18n.GetLocale(c.Request().Context()))
	})
}

func TestMatchAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "ru"},
		{"ru", "ru"},
		{"en-US", "en"},
		{"de-DE", "ru"},
		{"uk-UA,ru;q=0.8", "ru"},
		{"garbage;;;", "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, matchAcceptLanguage(tt.header))
		})
	}
}
