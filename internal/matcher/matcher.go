// Package matcher decides whether a typed character counts as the reference character.
package matcher

import "unicode"

// umlautFolds maps a reference character to the Latin letters accepted for it
// besides exact and lowercase matches.
var umlautFolds = map[rune][]rune{
	'ß': {'S', 's'},
	'Ü': {'U', 'u'},
	'Ä': {'A', 'a'},
	'Ö': {'O', 'o'},
	'ü': {'u'},
	'ä': {'a'},
	'ö': {'o'},
}

// Matches reports whether typed is accepted for reference. The relation is
// directional: Matches('s', 'ß') is true while Matches('ß', 's') is not.
func Matches(typed, reference rune) bool {
	if typed == reference {
		return true
	}
	if typed == unicode.ToLower(reference) {
		return true
	}
	for _, r := range umlautFolds[reference] {
		if typed == r {
			return true
		}
	}
	return false
}
