// Package translate renders user facing messages (assembler diagnostics,
// CLI reports) in the language of the host locale.
package translate

import (
	"log/slog"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		slog.Debug("elt: locale", "err", err)
	}

	SetLocales(locales...)
}

// SetLocales selects the message printer for the first matching locale.
// With no locales, en-US is used.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{language.AmericanEnglish.String()}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
