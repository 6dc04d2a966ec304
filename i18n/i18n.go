// Package i18n holds the dashboard translations and locale helpers.
package i18n

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default is used when nothing better can be negotiated.
const Default = "fr"

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

// Supported lists the language codes the UI is translated into.
func Supported() []string { return []string{"fr", "en"} }

// DetectLanguage negotiates an Accept-Language header (or a bare code)
// against the supported languages.
func DetectLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Normalize returns lang if it is supported, Default otherwise.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, s := range Supported() {
		if s == lang {
			return s
		}
	}
	return Default
}

// T translates code into lang, falling back to French then to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[Default][code]; ok {
		return s
	}
	return code
}

// Tf is T followed by fmt.Sprintf.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

type langKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, Normalize(lang))
}

// LangFrom returns the request language, or Default.
func LangFrom(ctx context.Context) string {
	if l, ok := ctx.Value(langKey{}).(string); ok && l != "" {
		return l
	}
	return Default
}

func tag(lang string) language.Tag {
	if Normalize(lang) == "en" {
		return language.English
	}
	return language.French
}

// FormatMoney renders amount with two decimals in the locale's number style
// followed by the currency label.
func FormatMoney(lang string, amount float64, currency string) string {
	p := message.NewPrinter(tag(lang))
	s := p.Sprint(number.Decimal(amount, number.Scale(2)))
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatDays renders a duration in days, e.g. "1 jour" or "3 jours".
func FormatDays(lang string, days int) string {
	if days == 1 || days == -1 {
		return Tf(lang, "duration.day", days)
	}
	return Tf(lang, "duration.days", days)
}
