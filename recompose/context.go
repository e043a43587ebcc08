package recompose

import (
	"github.com/codeyousef/summon-sub017/ambient"
	"github.com/codeyousef/summon-sub017/callback"
	"github.com/codeyousef/summon-sub017/compose"
	"github.com/codeyousef/summon-sub017/render"
)

// RendererKey and ComposerKey are the mandatory registered keys named
// by spec §4.5's design note ("the 'current renderer' and 'current
// composer' are mandatory registered keys... This replaces global
// mutable singletons"). RegistryKey extends the same pattern to the
// callback registry (spec §4.7 invariant iii: "per-task, not global").
//
// They live here, not in render/compose themselves, because compose
// cannot import ambient (ambient imports compose for *Scope) and
// render has no reason to know about ambient at all — recompose is the
// one package that already depends on all three.
var (
	RendererKey = ambient.NewKey[*render.R]("summon.current_renderer")
	ComposerKey = ambient.NewKey[*compose.Composer]("summon.current_composer")
	RegistryKey = ambient.NewKey[*callback.Registry]("summon.current_registry")
)

// CurrentRenderer fetches the renderer context for the active render
// root. Composables call this instead of touching any package-level
// variable (spec §5: "a process-wide global for 'current renderer' is
// prohibited").
func CurrentRenderer(scope *compose.Scope) *render.R {
	return ambient.Inject(scope, RendererKey, nil)
}

// CurrentComposer fetches the composer for the active render root.
func CurrentComposer(scope *compose.Scope) *compose.Composer {
	return ambient.Inject(scope, ComposerKey, nil)
}

// CurrentRegistry fetches the callback registry for the active render
// root.
func CurrentRegistry(scope *compose.Scope) *callback.Registry {
	return ambient.Inject(scope, RegistryKey, nil)
}
