package dashboard

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// supportedLocales lists the locales with number formatting rules the shell
// is tested against. Anything else falls back to English.
var supportedLocales = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("en-IN"),
	language.Hindi,
	language.Marathi,
})

var (
	printerMu sync.Mutex
	printers  = map[string]*message.Printer{}
)

// ResolveLocale maps a viewer locale onto a supported language tag.
// Language-region pairs fall back to their base language.
func ResolveLocale(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return language.English
	}
	desired, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(desired) == 0 {
		return language.English
	}
	tag, _, confidence := supportedLocales.Match(desired...)
	if confidence == language.No {
		return language.English
	}
	return tag
}

// FormatterFor returns number formatting rules for a viewer locale.
func FormatterFor(locale string) Formatter {
	tag := ResolveLocale(locale)
	printerMu.Lock()
	defer printerMu.Unlock()
	printer, ok := printers[tag.String()]
	if !ok {
		printer = message.NewPrinter(tag)
		printers[tag.String()] = printer
	}
	return Formatter{printer: printer}
}
