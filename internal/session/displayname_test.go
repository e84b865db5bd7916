package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ada@example.com", "Ada"},
		{"ada.lovelace@example.com", "Ada Lovelace"},
		{"grace_brewster.hopper@navy.mil", "Grace Brewster Hopper"},
		{"alan.Turing@x", "Alan Turing"},
		{"mIxEd@x", "MIxEd"},
		{"no-separator", "No-separator"},
		{"a..b__c@x", "A B C"},
		{"first@second@third", "First"},
		{"élodie.øyvind@x", "Élodie Øyvind"},
		{"  padded@x  ", "Padded"},
		{"@example.com", FallbackName},
		{"._@x", FallbackName},
		{"", FallbackName},
		{"   ", FallbackName},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DisplayName(tc.in), "input %q", tc.in)
	}
}
