package demo

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	msgBookmarked = &i18n.Message{ID: "Bookmarked", Other: "Bookmarked"}
	msgDeleted    = &i18n.Message{ID: "Deleted", Other: "Deleted"}
	msgCardCount  = &i18n.Message{ID: "CardCount", One: "{{.Count}} card", Other: "{{.Count}} cards"}
)

// Messages renders the demo's user-facing strings in one language.
type Messages struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// NewBundle loads every embedded message file.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}
	return bundle, nil
}

// NewMessages returns messages for tag, falling back to English for
// languages without a message file.
func NewMessages(bundle *i18n.Bundle, tag language.Tag) *Messages {
	matcher := language.NewMatcher(bundle.LanguageTags())
	_, index, _ := matcher.Match(tag)
	matched := bundle.LanguageTags()[index]
	return &Messages{
		tag:       matched,
		localizer: i18n.NewLocalizer(bundle, matched.String(), language.English.String()),
	}
}

// Language returns the language the messages resolved to.
func (m *Messages) Language() language.Tag { return m.tag }

// Bookmarked is logged when a card is bookmarked.
func (m *Messages) Bookmarked() string {
	return m.localize(&i18n.LocalizeConfig{DefaultMessage: msgBookmarked})
}

// Deleted is logged when a card is removed.
func (m *Messages) Deleted() string {
	return m.localize(&i18n.LocalizeConfig{DefaultMessage: msgDeleted})
}

// CardCount describes how many cards are listed.
func (m *Messages) CardCount(n int) string {
	return m.localize(&i18n.LocalizeConfig{
		DefaultMessage: msgCardCount,
		PluralCount:    n,
		TemplateData:   map[string]any{"Count": n},
	})
}

func (m *Messages) localize(cfg *i18n.LocalizeConfig) string {
	s, err := m.localizer.Localize(cfg)
	if err != nil {
		// Localize still returns the default message when a translation is
		// missing.
		if s != "" {
			return s
		}
		return cfg.DefaultMessage.Other
	}
	return s
}
