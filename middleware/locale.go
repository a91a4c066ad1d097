package middleware

import (
	"context"
	"net/http"
	"time"

	"ad_generator_go/config"
	"ad_generator_go/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

var localeMatcher = language.NewMatcher([]language.Tag{language.Russian, language.English})

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default (DEFAULT_LANGUAGE, "ru")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = i18n.DefaultLanguage()
				}
				setLanguageCookie(c, lang, cfg != nil && cfg.Environment == "production")
			} else if cookie, err := c.Cookie("lang"); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = matchAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			// Set in both echo context and request context
			c.Set("locale", lang)

			// Update request context for templ components and services
			ctx := context.WithValue(c.Request().Context(), i18n.LocaleContextKey, lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// matchAcceptLanguage picks the supported language closest to the header,
// falling back to the default language
func matchAcceptLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLanguage()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return i18n.DefaultLanguage()
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return i18n.DefaultLanguage()
	}
	return []string{"ru", "en"}[idx]
}

// setLanguageCookie persists the chosen language for a year
func setLanguageCookie(c echo.Context, lang string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = "lang"
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}
