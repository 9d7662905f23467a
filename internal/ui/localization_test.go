package ui

import (
	"testing"
)

func TestNewLocalization(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected default language 'en', got '%s'", l.GetCurrentLanguage())
	}
}

func TestSetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("ru")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("Expected language 'ru', got '%s'", l.GetCurrentLanguage())
	}

	// Unknown language keeps the current one
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("Expected language to stay 'ru', got '%s'", l.GetCurrentLanguage())
	}

	// "system" falls back to English
	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected language 'en' for system, got '%s'", l.GetCurrentLanguage())
	}
}

func TestGetText(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText(KeyStream); got != "Stream" {
		t.Errorf("Expected 'Stream', got '%s'", got)
	}

	l.SetLanguage("ru")
	if got := l.GetText(KeyDownload); got != "Скачать" {
		t.Errorf("Expected 'Скачать', got '%s'", got)
	}

	// Unknown key falls back to the key itself
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key fallback, got '%s'", got)
	}
}

func TestAllLanguagesCoverTransportKeys(t *testing.T) {
	l := NewLocalization()

	keys := []string{KeyPlay, KeyPause, KeyStop, KeyNext, KeyPrevious, KeyStream, KeyDownload}
	for lang := range l.GetAvailableLanguages() {
		for _, key := range keys {
			if _, found := l.texts[lang][key]; !found {
				t.Errorf("Language %s missing key %s", lang, key)
			}
		}
	}
}
