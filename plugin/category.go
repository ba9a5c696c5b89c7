package plugin

import "fmt"

// Category identifies the kind of capability a plugin provides.
// The set is closed; extending the platform with a new capability class
// means adding a new constant here.
type Category string

// Known plugin categories.
const (
	// CategoryAPIConnector covers request/response integrations with
	// external data and filing APIs (market data, tax filing, banking).
	CategoryAPIConnector Category = "api_connector"

	// CategoryUIComponent covers embeddable front-end components supplied
	// by white-label partners.
	CategoryUIComponent Category = "ui_component"

	// CategoryVideoChat covers video conferencing providers used for
	// consultations with Deaf/Hard-of-Hearing users.
	CategoryVideoChat Category = "video_chat"

	// CategoryASLInterpreter covers ASL interpretation services, both
	// AI-generated and live interpreters.
	CategoryASLInterpreter Category = "asl_interpreter"

	// CategoryPaymentProcessor covers payment and billing providers.
	CategoryPaymentProcessor Category = "payment_processor"

	// CategoryAuthProvider covers external authentication providers.
	CategoryAuthProvider Category = "authentication"

	// CategoryDataConnector covers bulk data import/export integrations.
	CategoryDataConnector Category = "data_connector"
)

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryAPIConnector,
		CategoryUIComponent,
		CategoryVideoChat,
		CategoryASLInterpreter,
		CategoryPaymentProcessor,
		CategoryAuthProvider,
		CategoryDataConnector,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAPIConnector, CategoryUIComponent, CategoryVideoChat,
		CategoryASLInterpreter, CategoryPaymentProcessor,
		CategoryAuthProvider, CategoryDataConnector:
		return true
	}
	return false
}

// String returns the category's wire identifier.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a string identifier into a Category.
// It returns an error for unknown identifiers so that configuration typos
// surface at load time rather than as silently empty registries.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown plugin category: %q", s)
	}
	return c, nil
}
