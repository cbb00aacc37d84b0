// Package i18n holds the translated strings of the status extension and picks a
// printer for a request's preferred language.
package i18n

import (
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key. StatusCountLabel is
// printed without arguments and yields a format with one %d verb.
const (
	StatusLabel        = "Not Picked Up"
	StatusCountLabel   = "Not Picked Up (%%d)"
	BulkActionLabel    = "Change status to Not Picked Up"
	OrderNote          = "Order marked as Not Picked Up"
	OrdersMarkedNotice = "%d orders marked as Not Picked Up."
)

var supported = []language.Tag{language.English, language.German}

// Catalog resolves message keys for the supported languages.
type Catalog struct {
	cat     catalog.Catalog
	matcher language.Matcher
}

// NewCatalog builds the message catalog. English is the fallback language.
func NewCatalog() (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	entries := []struct {
		tag language.Tag
		key string
		msg catalog.Message
	}{
		{language.English, StatusLabel, catalog.String("Not Picked Up")},
		{language.English, StatusCountLabel, catalog.String("Not Picked Up (%%d)")},
		{language.English, BulkActionLabel, catalog.String("Change status to Not Picked Up")},
		{language.English, OrderNote, catalog.String("Order marked as Not Picked Up")},
		{language.English, OrdersMarkedNotice, plural.Selectf(1, "%d",
			plural.One, "%d order marked as Not Picked Up.",
			plural.Other, "%d orders marked as Not Picked Up.",
		)},
		{language.German, StatusLabel, catalog.String("Nicht abgeholt")},
		{language.German, StatusCountLabel, catalog.String("Nicht abgeholt (%%d)")},
		{language.German, BulkActionLabel, catalog.String("Status in „Nicht abgeholt“ ändern")},
		{language.German, OrderNote, catalog.String("Bestellung als nicht abgeholt markiert")},
		{language.German, OrdersMarkedNotice, plural.Selectf(1, "%d",
			plural.One, "%d Bestellung als nicht abgeholt markiert.",
			plural.Other, "%d Bestellungen als nicht abgeholt markiert.",
		)},
	}

	for _, e := range entries {
		if err := b.Set(e.tag, e.key, e.msg); err != nil {
			return nil, fmt.Errorf("failed to add %q for %s: %w", e.key, e.tag, err)
		}
	}

	return &Catalog{cat: b, matcher: language.NewMatcher(supported)}, nil
}

// Printer returns a printer for the best supported match of the given
// Accept-Language style preferences. Unparseable input selects English.
func (c *Catalog) Printer(preferences ...string) *message.Printer {
	tag, _ := language.MatchStrings(c.matcher, preferences...)
	base, _ := tag.Base()
	return message.NewPrinter(language.Make(base.String()), message.Catalog(c.cat))
}
