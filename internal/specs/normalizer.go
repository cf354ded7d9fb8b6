// Package specs normalizes the legacy special-effects encodings and
// rebuilds the derived product specs display string.
//
// The special_effects column accumulated three encodings over time:
// a JSON array literal (`["4","7"]`), a pipe-delimited id list
// (`"4|7"`), and occasionally already-resolved names. Everything is
// collapsed to the canonical pipe-delimited id form; resolved names
// are a read-time projection only.
package specs

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedEffects marks a bracketed value that neither JSON-parses
// nor yields any quoted digit tokens. The raw value is preserved;
// callers must report this distinctly from "no effects".
var ErrMalformedEffects = errors.New("special effects value is malformed")

// quotedDigits salvages ids from truncated/invalid JSON like `["4", "7`
var quotedDigits = regexp.MustCompile(`"(\d+)"`)

// Effects is the normalized form of a raw special_effects value.
type Effects struct {
	IDs       []string // ordered effect ids (or raw tokens)
	Canonical string   // pipe-delimited id list, the only form persisted on products
	Display   string   // resolved names joined with " | ", persisted on order snapshots only
}

// NormalizeEffects converts a raw special_effects value into its
// canonical id list and resolved display string. names maps effect id
// to effect name; unknown ids stay in the output verbatim.
//
// Empty input returns empty outputs and no error. A malformed
// bracketed value returns the raw string in both forms together with
// ErrMalformedEffects.
func NormalizeEffects(raw string, names map[string]string) (Effects, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Effects{}, nil
	}

	// A leading bracket signals the JSON encoding. Truncated values
	// (no closing bracket) fail the strict parse and fall into the
	// regex salvage below, which is exactly what they need.
	var ids []string
	if strings.HasPrefix(trimmed, "[") {
		var err error
		ids, err = parseJSONIDs(trimmed)
		if err != nil {
			// Truncated or hand-mangled JSON: salvage quoted digit tokens
			ids = extractQuotedIDs(trimmed)
			if len(ids) == 0 {
				return Effects{Canonical: raw, Display: raw},
					fmt.Errorf("%w: %q", ErrMalformedEffects, raw)
			}
		}
	} else {
		ids = splitPipeList(trimmed)
	}

	return Effects{
		IDs:       ids,
		Canonical: strings.Join(ids, "|"),
		Display:   resolveNames(ids, names),
	}, nil
}

// parseJSONIDs strictly parses a JSON array and coerces every element
// to a trimmed string id. Elements may be strings or numbers.
func parseJSONIDs(raw string) ([]string, error) {
	var elements []interface{}
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(elements))
	for _, el := range elements {
		var id string
		switch v := el.(type) {
		case string:
			id = strings.TrimSpace(v)
		case float64:
			id = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			id = strings.TrimSpace(fmt.Sprint(v))
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func extractQuotedIDs(raw string) []string {
	matches := quotedDigits.FindAllStringSubmatch(raw, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

func splitPipeList(raw string) []string {
	parts := strings.Split(raw, "|")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// resolveNames maps ids to names, keeping unknown ids as-is
func resolveNames(ids []string, names map[string]string) string {
	resolved := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok && name != "" {
			resolved = append(resolved, name)
		} else {
			resolved = append(resolved, id)
		}
	}
	return strings.Join(resolved, " | ")
}

// BuildSpecs assembles the derived specs display string from the
// resolved size name, UPS count, dimension and resolved effects, in
// that fixed order. Empty segments are dropped; UPS appears only when
// positive. The result is fully derived and never hand-edited.
func BuildSpecs(sizeName string, ups int, dimension, effectsDisplay string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{sizeName, upsClause(ups), dimension, effectsDisplay} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

func upsClause(ups int) string {
	if ups <= 0 {
		return ""
	}
	return fmt.Sprintf("UPS: %d", ups)
}
