package controller

import "fmt"

// Messages is the user-facing text of one locale.
type Messages struct {
	MissingTarget string
	scanFailed    string
}

// ScanFailed formats the failure notice for cause.
func (m Messages) ScanFailed(cause string) string {
	return fmt.Sprintf(m.scanFailed, cause)
}

const DefaultLocale = "en"

var catalog = map[string]Messages{
	"en": {
		MissingTarget: "Please enter a domain or IP",
		scanFailed:    "Scan failed: %s",
	},
	"it": {
		MissingTarget: "Per favore inserisci un dominio o IP",
		scanFailed:    "Errore durante la scansione: %s",
	},
}

// MessagesFor returns the catalog for locale, falling back to English.
func MessagesFor(locale string) Messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	return catalog[DefaultLocale]
}

// HasLocale reports whether a catalog exists for locale.
func HasLocale(locale string) bool {
	_, ok := catalog[locale]
	return ok
}
