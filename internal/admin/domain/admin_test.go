package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw      string
		expected Role
	}{
		{"admin", RoleAdmin},
		{"superAdmin", RoleSuperAdmin},
		{"pending", RolePending},
		{"", RolePending},
		{"moderator", RolePending},
		{"SuperAdmin", RolePending},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseRole(tt.raw))
		})
	}
}

func TestRoleClaims(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected map[string]interface{}
	}{
		{"admin gets role claim", RoleAdmin, map[string]interface{}{"role": "admin"}},
		{"superAdmin gets role claim", RoleSuperAdmin, map[string]interface{}{"role": "superAdmin"}},
		{"pending revokes claims", RolePending, map[string]interface{}{}},
		{"unknown revokes claims", Role("moderator"), map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.Claims())
		})
	}
}
