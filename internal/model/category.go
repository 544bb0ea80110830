package model

import (
	"encoding/json"
	"strings"
)

// Category classifies a memory entry. The set is closed except for the
// Custom arm, which carries an arbitrary lowercase label.
type Category struct {
	kind  categoryKind
	label string
}

type categoryKind uint8

const (
	kindCore categoryKind = iota
	kindDaily
	kindConversation
	kindCustom
)

// The fixed categories.
var (
	Core         = Category{kind: kindCore}
	Daily        = Category{kind: kindDaily}
	Conversation = Category{kind: kindConversation}
)

// Custom returns an open-ended category with the given label, lowercased.
func Custom(label string) Category {
	return Category{kind: kindCustom, label: strings.ToLower(label)}
}

// IsCustom reports whether the category is a custom-labeled one.
func (c Category) IsCustom() bool {
	return c.kind == kindCustom
}

// Label returns the custom label, or "" for the fixed categories.
func (c Category) Label() string {
	return c.label
}

func (c Category) String() string {
	switch c.kind {
	case kindCore:
		return "core"
	case kindDaily:
		return "daily"
	case kindConversation:
		return "conversation"
	default:
		return c.label
	}
}

// ParseCategory maps a name to a Category. Unknown names become Custom.
func ParseCategory(s string) Category {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "core":
		return Core
	case "daily":
		return Daily
	case "conversation":
		return Conversation
	default:
		return Custom(name)
	}
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}
