package component

import (
	"github.com/deaffirst/enterprise-sdk/apiconn"
	"github.com/deaffirst/enterprise-sdk/interpreter"
	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/session"
	"github.com/deaffirst/enterprise-sdk/videochat"
)

// Catalog maps "category/provider" identifiers to plugin factories.
// Apply resolves configuration entries against it.
type Catalog map[string]plugin.Factory

// Add binds a factory to a (category, provider) pair.
func (c Catalog) Add(category plugin.Category, provider string, factory plugin.Factory) {
	c[category.String()+"/"+provider] = factory
}

// Lookup resolves the factory for a (category, provider) pair.
func (c Catalog) Lookup(category, provider string) (plugin.Factory, bool) {
	f, ok := c[category+"/"+provider]
	return f, ok
}

// DefaultCatalog returns the built-in providers. Video chat plugins
// share the given session store; a nil store disables session tracking.
func DefaultCatalog(store session.Store) Catalog {
	c := Catalog{}

	c.Add(plugin.CategoryAPIConnector, "generic", apiconn.Factory)
	c.Add(plugin.CategoryAPIConnector, "bloomberg", apiconn.BloombergFactory)
	c.Add(plugin.CategoryAPIConnector, "turbotax", apiconn.TurboTaxFactory)
	c.Add(plugin.CategoryAPIConnector, "bank", apiconn.BankFactory)
	c.Add(plugin.CategoryAPIConnector, "custom", apiconn.CustomFactory)

	c.Add(plugin.CategoryVideoChat, "twilio", videochat.TwilioFactory(store))
	c.Add(plugin.CategoryVideoChat, "zoom", videochat.ZoomFactory(store))

	c.Add(plugin.CategoryASLInterpreter, "vsllabs", interpreter.VSLLabsFactory)
	c.Add(plugin.CategoryASLInterpreter, "signasl", interpreter.SignASLFactory)
	c.Add(plugin.CategoryASLInterpreter, "pinksync", interpreter.PinkSyncFactory)

	return c
}
