// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package ipvalidator

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// ErrNotIPv6 is returned when a string is not a plain IPv6 literal.
var ErrNotIPv6 = errors.New("not an IPv6 literal")

// IPType represents the type of IP address
type IPType int

const (
	Invalid IPType = iota
	IPv4
	IPv6
)

func (t IPType) String() string {
	switch t {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	default:
		return "Invalid"
	}
}

// IsValidIP returns true if the string is a valid IP address (either IPv4 or IPv6)
func IsValidIP(ip string) bool {
	return ValidateIP(ip) != Invalid
}

// ValidateIP checks if the given string is a valid IP address and returns its type.
// Zoned IPv6 addresses and IPv4 octets with leading zeros are rejected.
func ValidateIP(ip string) IPType {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return Invalid
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil || addr.Zone() != "" {
		return Invalid
	}
	if addr.Is4() {
		return IPv4
	}
	return IPv6
}

// CanonicalIPv6 returns the compressed RFC 5952 text form of an IPv6
// literal, so that every spelling of the same address yields one string.
// IPv4-mapped addresses keep their dotted suffix (::ffff:1.2.3.4).
func CanonicalIPv6(ip string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotIPv6, ip)
	}
	if !addr.Is6() || addr.Zone() != "" {
		return "", fmt.Errorf("%w: %q", ErrNotIPv6, ip)
	}
	return addr.String(), nil
}
