package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/acara-auth/internal/domain/entity"
)

func TestSummaryOmitsPassword(t *testing.T) {
	u := &entity.User{ID: "id-1", Username: "admin", Email: "admin@acara.local", Password: "encoded-secret", Role: entity.RoleAdmin}

	out := summary(u)
	assert.Contains(t, out, "username=admin")
	assert.Contains(t, out, "role=admin")
	assert.NotContains(t, out, "password")
	assert.NotContains(t, out, "encoded-secret")
}
