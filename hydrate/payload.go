// Package hydrate implements the hydration packager (spec component
// C8): serializing the callback registry into the stable JSON schema
// the client bootstrap consumes, and emitting the marker + bootstrap
// script pair into the rendered body.
//
// The teacher has no hydration concept (a TUI has no client to
// hydrate), so this package's wire format follows spec §4.8 directly;
// its use of encoding/json per-value (but hand-rolled object framing
// for the top-level map) is grounded on the same ecosystem choice
// SPEC_FULL.md §11 records for the rest of the module: encoding/json
// is the corpus-wide default for JSON, and msgpack (present elsewhere
// in the pack's dependency graph) is never reached for an
// explicitly-JSON wire contract.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/codeyousef/summon-sub017/callback"
)

// actionJSON mirrors the stable, additive-only wire schema of spec
// §4.8. Field presence (via omitempty) determines which variant a
// given entry encodes.
type actionJSON struct {
	Kind       string `json:"kind"`
	URL        string `json:"url,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
	Payload    any    `json:"payload,omitempty"`
	Optimistic *bool  `json:"optimistic,omitempty"`
	TargetID   string `json:"targetId,omitempty"`
	ID         string `json:"id,omitempty"`
}

// encodeAction renders a to its stable JSON shape (spec §4.8). id is
// the action's own registry id: the user-closure variant echoes it
// back as the "id" field (spec §8 scenario S6: `{"kind":"user",
// "id":"cb-0"}`) so the client bootstrap can POST to
// /summon/callback/{id} without any other correlation.
func encodeAction(id string, a callback.Action) actionJSON {
	switch a.Kind {
	case callback.KindNavigate:
		return actionJSON{Kind: "nav", URL: a.URL}
	case callback.KindServerRPC:
		return actionJSON{Kind: "rpc", Endpoint: a.Endpoint, Payload: a.Payload, Optimistic: a.Optimistic}
	case callback.KindToggleVisibility:
		return actionJSON{Kind: "toggle", TargetID: a.TargetID}
	case callback.KindUserClosure:
		return actionJSON{Kind: "user", ID: id}
	default:
		return actionJSON{Kind: "user", ID: id}
	}
}

// MarshalOrdered renders the registry's entries as a JSON object whose
// key order is exactly registration order (spec §8 testable property
// 8). encoding/json sorts map keys lexicographically, which would
// reorder "cb-10" before "cb-2"; the object is therefore framed by
// hand, delegating only per-value encoding to encoding/json.
func MarshalOrdered(reg *callback.Registry) (string, error) {
	entries := reg.Ordered()
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ID)
		if err != nil {
			return "", fmt.Errorf("hydrate: marshal callback id %q: %w", e.ID, err)
		}
		val, err := json.Marshal(encodeAction(e.ID, e.Action))
		if err != nil {
			return "", fmt.Errorf("hydrate: marshal action for %q: %w", e.ID, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}
