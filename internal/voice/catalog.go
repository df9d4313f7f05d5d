package voice

import "strings"

// namePlaceholder is the token inside preset templates that is replaced with
// the recipient's name.
const namePlaceholder = "{name}"

// defaultRecipientName is substituted when no recipient name is given.
const defaultRecipientName = "there"

// Preset is a group of message templates for one occasion. Each sample may
// contain a {name} placeholder for the recipient's name.
type Preset struct {
	Type    string   `json:"type"`
	Label   string   `json:"label"`
	Samples []string `json:"samples"`
}

// Catalog is an immutable set of message presets keyed by occasion type.
// It is built once at startup and injected into the generation service;
// nothing mutates it afterwards.
type Catalog struct {
	presets []Preset
	byType  map[string]int
}

// NewCatalog builds a catalog from the given presets.
func NewCatalog(presets []Preset) *Catalog {
	byType := make(map[string]int, len(presets))
	for i, p := range presets {
		byType[p.Type] = i
	}
	return &Catalog{presets: presets, byType: byType}
}

// Presets returns the catalog's presets in declaration order.
func (c *Catalog) Presets() []Preset {
	return c.presets
}

// Lookup returns the preset for the given occasion type.
// Returns ErrUnknownMessageType if the type is not in the catalog.
func (c *Catalog) Lookup(messageType string) (Preset, error) {
	i, ok := c.byType[messageType]
	if !ok {
		return Preset{}, ErrUnknownMessageType
	}
	return c.presets[i], nil
}

// Render substitutes the recipient's name into a template. The {name} token
// is replaced with recipientName, or "there" when no name is given. A
// template without the token is returned unchanged apart from trimming.
func Render(template, recipientName string) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = defaultRecipientName
	}
	return strings.ReplaceAll(template, namePlaceholder, name)
}

// DefaultCatalog returns the built-in preset catalog: four occasions with
// three templates each.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Preset{
		{
			Type:  "birthday",
			Label: "Birthday Wishes",
			Samples: []string{
				"Happy birthday {name}! Wishing you a day filled with love and laughter.",
				"Hope your special day is as wonderful as you are, {name}!",
				"Happy birthday! May all your wishes come true this year.",
			},
		},
		{
			Type:  "encouragement",
			Label: "Words of Encouragement",
			Samples: []string{
				"I believe in you, {name}. You've got this!",
				"Keep pushing forward. I'm so proud of how far you've come.",
				"You're stronger than you know, and I'm always here for you.",
			},
		},
		{
			Type:  "love",
			Label: "Love & Appreciation",
			Samples: []string{
				"I love you so much, {name}. You mean the world to me.",
				"Just wanted to remind you how special you are to me.",
				"Thinking of you and sending all my love.",
			},
		},
		{
			Type:  "gratitude",
			Label: "Thank You",
			Samples: []string{
				"Thank you for everything, {name}. I'm so grateful for you.",
				"I just wanted to say thank you for being there for me.",
				"Your kindness means more to me than words can say.",
			},
		},
	})
}
