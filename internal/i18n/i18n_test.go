package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT_EnglishAndGerman(t *testing.T) {
	Init("en")
	assert.Equal(t, "Store is reachable.", T("status.connected"))

	Init("de")
	assert.Equal(t, "Datenbank ist erreichbar.", T("status.connected"))
	assert.Equal(t, "de", Lang())

	Init("en")
}

func TestT_FormatsArguments(t *testing.T) {
	Init("en")
	assert.Equal(t, "Supplier 'Acme' created with id 7.", T("supplier.created", "Acme", 7))
}

func TestT_UnknownIDFallsBackToID(t *testing.T) {
	Init("en")
	assert.Equal(t, "no.such.message", T("no.such.message"))
}

func TestT_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("xx")
	assert.Equal(t, "Store is reachable.", T("status.connected"))
	Init("en")
}

func TestLanguages_ContainsEmbedded(t *testing.T) {
	Init("en")
	langs := Languages()
	assert.Contains(t, langs, "en")
	assert.Contains(t, langs, "de")
}
