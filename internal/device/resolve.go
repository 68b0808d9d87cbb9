// Package device resolves user-supplied friendly names to backend
// identifiers and back, over the loosely-structured entity records returned
// by the Alexa API.
package device

import (
	"fmt"
	"strings"
)

// Record is one device, group or list entity as returned by the API layer.
type Record = map[string]any

// Default field-priority lists. Order matters: the first key present with a
// usable value wins.
var (
	DefaultNameKeys = []string{"name", "accountName", "friendlyName"}
	DefaultIDKeys   = []string{"id", "serialNumber", "deviceSerialNumber", "entityId"}
)

// IDName is one (identifier, display name) pair extracted from a record.
type IDName struct {
	ID   string
	Name string
}

// FindIDByName finds the record whose display name matches name and extracts
// its identifier. Matching is case- and surrounding-whitespace-insensitive.
// An exact pass over all items runs before a substring fallback pass; within
// both, the first match wins, by item order first, then by nameKeys priority
// within an item.
//
// A matched record with no extractable identifier is still reported: the
// returned id is "" but the record is non-nil. Absence is never an error.
// Nil key lists select the defaults.
func FindIDByName(items []Record, name string, nameKeys, idKeys []string) (string, Record) {
	target := normalize(name)
	if target == "" {
		return "", nil
	}
	if nameKeys == nil {
		nameKeys = DefaultNameKeys
	}
	if idKeys == nil {
		idKeys = DefaultIDKeys
	}

	// Exact pass.
	for _, item := range items {
		if matchRecord(item, nameKeys, func(stored string) bool { return stored == target }) {
			return extractID(item, idKeys), item
		}
	}

	// Substring fallback pass.
	for _, item := range items {
		if matchRecord(item, nameKeys, func(stored string) bool { return strings.Contains(stored, target) }) {
			return extractID(item, idKeys), item
		}
	}

	return "", nil
}

// FindRecordByID finds the record whose identifier matches id, returning the
// stored identifier value (stringified) and the record itself. The record is
// returned even when it carries no usable name field. Matching is case- and
// surrounding-whitespace-insensitive; the first match wins, by item order
// first, then by idKeys priority within an item. No match returns ("", nil).
// A nil key list selects the defaults.
func FindRecordByID(items []Record, id string, idKeys []string) (string, Record) {
	target := normalize(id)
	if target == "" {
		return "", nil
	}
	if idKeys == nil {
		idKeys = DefaultIDKeys
	}

	for _, item := range items {
		for _, key := range idKeys {
			if stored, ok := stringValue(item[key]); ok && normalize(stored) == target {
				return stored, item
			}
		}
	}

	return "", nil
}

// FindNameByID finds the record whose identifier matches id and returns its
// display name. If the matching record has no usable name field, the
// stringified stored id value is returned instead, so the result is never
// empty once an id matched. No match returns "".
func FindNameByID(items []Record, id string, idKeys, nameKeys []string) string {
	stored, item := FindRecordByID(items, id, idKeys)
	if item == nil {
		return ""
	}
	if nameKeys == nil {
		nameKeys = DefaultNameKeys
	}

	for _, key := range nameKeys {
		if name, ok := stringValue(item[key]); ok && name != "" {
			return name
		}
	}
	return stored
}

// ExtractMapping collects (id, name) pairs from items in order, including a
// pair only when both idKey and nameKey hold non-empty values. Items missing
// either field are skipped silently.
func ExtractMapping(items []Record, idKey, nameKey string) []IDName {
	var pairs []IDName
	for _, item := range items {
		id, ok := stringValue(item[idKey])
		if !ok || id == "" {
			continue
		}
		name, ok := stringValue(item[nameKey])
		if !ok || name == "" {
			continue
		}
		pairs = append(pairs, IDName{ID: id, Name: name})
	}
	return pairs
}

// matchRecord reports whether any nameKey of item satisfies match, checking
// keys in priority order against normalized stored values.
func matchRecord(item Record, nameKeys []string, match func(string) bool) bool {
	for _, key := range nameKeys {
		stored, ok := stringValue(item[key])
		if !ok {
			continue
		}
		if match(normalize(stored)) {
			return true
		}
	}
	return false
}

// extractID returns the first non-nil id value of item as a string, or ""
// when none of the keys yields one.
func extractID(item Record, idKeys []string) string {
	for _, key := range idKeys {
		if id, ok := stringValue(item[key]); ok {
			return id
		}
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// stringValue converts a stored record value to a string. Nil values report
// ok=false; everything else is stringified.
func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	default:
		return fmt.Sprint(v), true
	}
}
