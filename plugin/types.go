package plugin

// Descriptor describes a registered plugin instance.
// It carries identifying metadata only, never the instance itself and
// never its settings, so listing surfaces cannot leak credentials or be
// used to bypass registry dispatch.
type Descriptor struct {
	// Category is the capability class the plugin is registered under.
	Category Category `json:"category"`

	// Name is the registration name, unique within the category.
	Name string `json:"name"`

	// Description is the plugin's self-reported provider description.
	Description string `json:"description,omitempty"`

	// Enabled reflects the instance's enabled flag.
	Enabled bool `json:"enabled"`
}

// ToDescriptor extracts a plugin's listing metadata. Variants that track
// an enabled flag expose it through an optional Enabled method; all
// others are reported as enabled.
func ToDescriptor(p Plugin) Descriptor {
	d := Descriptor{
		Category:    p.Category(),
		Name:        p.Name(),
		Description: p.Description(),
		Enabled:     true,
	}
	if e, ok := p.(interface{ Enabled() bool }); ok {
		d.Enabled = e.Enabled()
	}
	return d
}
