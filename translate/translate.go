// Package translate renders user-visible messages for the user's locale.
package translate

import (
	"log"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DefaultLocale is used when the environment does not report any locale.
const DefaultLocale = "en-US"

var printer atomic.Pointer[message.Printer]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("rvasm: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the message language from a preference list of
// BCP 47 tags, falling back to DefaultLocale.
func SetLanguage(locales ...string) {
	if len(locales) == 0 {
		locales = []string{DefaultLocale}
	}

	printer.Store(message.NewPrinter(message.MatchLanguage(locales...)))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}
