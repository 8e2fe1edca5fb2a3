package sim

import (
	"encoding/json"
	"fmt"
)

// stateFormatVersion is bumped whenever the serialized world layout changes
// incompatibly. Imports check it before touching the payload.
const stateFormatVersion = 1

type stateEnvelope struct {
	Version int         `json:"version"`
	World   *WorldState `json:"world"`
}

// SerializeWorldState encodes a world into the versioned JSON wire format.
func SerializeWorldState(w *WorldState) ([]byte, error) {
	data, err := json.Marshal(stateEnvelope{Version: stateFormatVersion, World: w})
	if err != nil {
		return nil, fmt.Errorf("serialize world: %w", err)
	}
	return data, nil
}

// DeserializeWorldState decodes a serialized world, rejecting malformed
// payloads and unknown format versions without partially applying anything.
func DeserializeWorldState(data []byte) (*WorldState, error) {
	var env stateEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("deserialize world: %w", err)
	}
	if env.Version != stateFormatVersion {
		return nil, fmt.Errorf("unsupported state format version %d (want %d)", env.Version, stateFormatVersion)
	}
	if env.World == nil {
		return nil, fmt.Errorf("deserialize world: missing world payload")
	}
	return env.World, nil
}
