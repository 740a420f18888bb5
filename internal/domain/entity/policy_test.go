package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanWriteCatalog(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		roles         Roles
		allowed       bool
	}{
		{"anonymous", false, nil, false},
		{"anonymous with roles", false, Roles{RoleAdmin}, false},
		{"customer only", true, Roles{RoleCustomer}, false},
		{"no roles", true, nil, false},
		{"seller", true, Roles{RoleSeller}, true},
		{"admin", true, Roles{RoleAdmin}, true},
		{"customer and seller", true, Roles{RoleCustomer, RoleSeller}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanWriteCatalog(tc.authenticated, tc.roles))
		})
	}
}
