// Package save persists game snapshots: a versioned JSON codec with a
// migration chain for old formats, and a SQLite-backed store.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/jinsei-game/jinsei/internal/game"
)

// CurrentVersion is the format written by Encode. Decode accepts this
// and every older version listed in the migration chain.
const CurrentVersion = "3"

// envelope wraps the snapshot with its format version. The game payload
// stays raw so migrations can rewrite fields that no longer exist on
// the current Snapshot type.
type envelope struct {
	Version string          `json:"version"`
	Game    json.RawMessage `json:"game"`
}

// migration upgrades the raw game payload by one version step.
type migration struct {
	from  string
	to    string
	apply func(map[string]any)
}

// Steps run in order; a version absent from the chain is unknown.
var migrations = []migration{
	{from: "1", to: "2", apply: migrateV1},
	{from: "2", to: "3", apply: migrateV2},
}

// migrateV1 handles the original prototype format: vitality was called
// health, turns were called rounds, and insurance did not exist yet.
func migrateV1(m map[string]any) {
	renameKey(m, "health", "vitality")
	renameKey(m, "maxHealth", "maxVitality")
	renameKey(m, "round", "turn")
	if _, ok := m["insuranceCards"]; !ok {
		m["insuranceCards"] = []any{}
	}
	if _, ok := m["insuranceBurden"]; !ok {
		m["insuranceBurden"] = 0
	}
}

// migrateV2 handles the pre-stats format: the discard pile was called
// playedCards and statistics were not tracked.
func migrateV2(m map[string]any) {
	renameKey(m, "playedCards", "discardPile")
	if _, ok := m["stats"]; !ok {
		m["stats"] = map[string]any{}
	}
}

func renameKey(m map[string]any, from, to string) {
	if v, ok := m[from]; ok {
		m[to] = v
		delete(m, from)
	}
}

// Encode serializes a snapshot in the current format.
func Encode(s *game.Snapshot) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return json.Marshal(envelope{Version: CurrentVersion, Game: payload})
}

// Decode parses saved data of any supported version into a snapshot.
// The second return is false when the data is malformed or of an
// unknown version; Decode never panics on hostile input. The returned
// snapshot is raw: pass it through game.FromSnapshot (or
// game.RepairSnapshot) before use.
func Decode(data []byte) (*game.Snapshot, bool) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if env.Version == "" || len(env.Game) == 0 {
		return nil, false
	}

	raw := make(map[string]any)
	if err := json.Unmarshal(env.Game, &raw); err != nil {
		return nil, false
	}

	version := env.Version
	for _, step := range migrations {
		if version == CurrentVersion {
			break
		}
		if step.from != version {
			continue
		}
		step.apply(raw)
		version = step.to
	}
	if version != CurrentVersion {
		return nil, false
	}

	migrated, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	var snap game.Snapshot
	if err := json.Unmarshal(migrated, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}
