// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package cliutil

import "strings"

var helpTokens = map[string]struct{}{
	"?":    {},
	"help": {},
	"h":    {},
}

// IsHelpToken reports whether the provided token is a recognised help alias.
func IsHelpToken(token string) bool {
	token = strings.TrimSpace(strings.ToLower(token))
	_, ok := helpTokens[token]
	return ok
}

// IsHelpRequest reports whether the first argument in args is a help alias.
func IsHelpRequest(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return IsHelpToken(args[0])
}

// ContainsHelpToken reports whether any argument is a help alias.
func ContainsHelpToken(args []string) bool {
	for _, arg := range args {
		if IsHelpToken(arg) {
			return true
		}
	}
	return false
}
