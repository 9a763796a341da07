// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package cliutil

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"A name=example.com", []string{"A", "name=example.com"}},
		{`TXT text="v=spf1 a -all"  name=x`, []string{"TXT", "text=v=spf1 a -all", "name=x"}},
		{`TXT text='say "hi"'`, []string{"TXT", `text=say "hi"`}},
		{`TXT text="a\"b"`, []string{"TXT", `text=a"b`}},
		{`TXT text=""`, []string{"TXT", "text="}},
	}
	for _, tt := range tests {
		got, err := SplitLine(tt.line)
		if err != nil {
			t.Fatalf("SplitLine(%q) error: %v", tt.line, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLine(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestSplitLineUnterminated(t *testing.T) {
	if _, err := SplitLine(`TXT text="open`); !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("SplitLine error = %v, want ErrUnterminatedQuote", err)
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"Name=example.com", "text=v=spf1"})
	if err != nil {
		t.Fatalf("ParseAssignments error: %v", err)
	}
	want := map[string]string{"name": "example.com", "text": "v=spf1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAssignments = %v, want %v", got, want)
	}
	if _, err := ParseAssignments([]string{"bare"}); !errors.Is(err, ErrNotAssignment) {
		t.Errorf("ParseAssignments(bare) error = %v, want ErrNotAssignment", err)
	}
	if _, err := ParseAssignments([]string{"=x"}); !errors.Is(err, ErrNotAssignment) {
		t.Errorf("ParseAssignments(=x) error = %v, want ErrNotAssignment", err)
	}
}
