// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package mapper

// escapeMarker, placed immediately before '=', stops that '=' from acting
// as the key/value separator. The marker itself stays in the key.
const escapeMarker = '`'

// SplitAttribute splits a TXT string such as "v=spf1 -all" into key and
// value at the first '=' whose preceding character is not a backtick.
// A leading '=' has no preceding character and never splits. ok is false
// when no separator exists.
func SplitAttribute(text string) (key, value string, ok bool) {
	for i := 1; i < len(text); i++ {
		if text[i] == '=' && text[i-1] != escapeMarker {
			return text[:i], text[i+1:], true
		}
	}
	return "", "", false
}
