package hydrate

import (
	"fmt"

	"github.com/codeyousef/summon-sub017/callback"
)

// MarkerElementID is the fixed id of the hydration-data <script>
// element (spec §4.8 item 1).
const MarkerElementID = "summon-hydration-data"

// Well-known static asset names (spec §6 "Static assets"). Name and
// content are part of the hydration contract; changing them breaks
// prior renders in-flight.
const (
	AssetBootstrapJS   = "summon-hydration.js"
	AssetBootstrapWasm = "summon-hydration.wasm"
	AssetBootstrapLoad = "summon-hydration.wasm.js"
)

// bootstrapConfig selects how the client bootstrap script is included.
type bootstrapConfig struct {
	path   string
	inline string
}

// BootstrapOption configures Emit's bootstrap script inclusion.
type BootstrapOption func(*bootstrapConfig)

// WithBootstrapPath sets the src path of the bootstrap <script> include.
// This is the default mode; path defaults to "/"+AssetBootstrapJS.
func WithBootstrapPath(path string) BootstrapOption {
	return func(c *bootstrapConfig) { c.path = path }
}

// WithInlineBootstrap embeds js directly instead of referencing a path.
func WithInlineBootstrap(js string) BootstrapOption {
	return func(c *bootstrapConfig) { c.inline = js }
}

// Emit renders the hydration marker and bootstrap include (spec §4.8):
// a <script type="application/json"> holding the ordered callback
// table, followed by a <script> that loads or inlines the client
// bootstrap.
func Emit(reg *callback.Registry, opts ...BootstrapOption) (string, error) {
	cfg := bootstrapConfig{path: "/" + AssetBootstrapJS}
	for _, opt := range opts {
		opt(&cfg)
	}

	payload, err := MarshalOrdered(reg)
	if err != nil {
		return "", err
	}

	marker := fmt.Sprintf(`<script type="application/json" id=%q>%s</script>`, MarkerElementID, payload)

	var bootstrap string
	if cfg.inline != "" {
		bootstrap = fmt.Sprintf(`<script>%s</script>`, cfg.inline)
	} else {
		bootstrap = fmt.Sprintf(`<script src=%q></script>`, cfg.path)
	}

	return marker + bootstrap, nil
}
