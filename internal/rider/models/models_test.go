package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRiderRequestComplete(t *testing.T) {
	assert.True(t, CreateRiderRequest{Email: "a@b.com", Password: "secret1", Name: "R"}.Complete())
	assert.True(t, CreateRiderRequest{Email: " ", Password: " ", Name: " "}.Complete())
	assert.False(t, CreateRiderRequest{Password: "secret1", Name: "R"}.Complete())
	assert.False(t, CreateRiderRequest{Email: "a@b.com", Name: "R"}.Complete())
	assert.False(t, CreateRiderRequest{Email: "a@b.com", Password: "secret1"}.Complete())
}

func TestNewCreateRiderResult(t *testing.T) {
	assert.Equal(t, "Successfully created rider Rider One (a@b.com).",
		NewCreateRiderResult("Rider One", "a@b.com").Message)
}

func TestNewInventory(t *testing.T) {
	assert.Equal(t, 2, NewInventory(5, 3).Unprofiled)
	// profiles without accounts are not reported as negative orphans
	assert.Zero(t, NewInventory(1, 3).Unprofiled)
}
