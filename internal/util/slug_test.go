package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Electronics", "electronics"},
		{"spaces", "Home Appliances", "home-appliances"},
		{"ampersand", "Home & Garden", "home-garden"},
		{"collapse repeats", "A  --  B", "a-b"},
		{"trim edges", "  Fancy Chair!  ", "fancy-chair"},
		{"digits kept", "iPhone 15 Pro", "iphone-15-pro"},
		{"already a slug", "summer-sale", "summer-sale"},
		{"only symbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	assert.Equal(t, Slugify("Home & Garden"), Slugify("Home & Garden"))
}
