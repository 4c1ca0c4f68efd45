package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleRequiresOpenSession(t *testing.T) {
	assert.True(t, RoleRequiresOpenSession(RoleCashier))
	assert.False(t, RoleRequiresOpenSession(RoleAdmin))
	assert.False(t, RoleRequiresOpenSession(RoleManager))
	assert.False(t, RoleRequiresOpenSession("UNKNOWN"))
}
