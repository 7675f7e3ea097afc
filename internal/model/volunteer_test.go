package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolunteerStatusIsValid(t *testing.T) {
	for _, s := range VolunteerStatuses {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}

	assert.False(t, VolunteerStatus("archived").IsValid())
	assert.False(t, VolunteerStatus("").IsValid())
	assert.False(t, VolunteerStatus("Pending").IsValid())
}

func TestStatusList(t *testing.T) {
	assert.Equal(t, "pending, approved, rejected, contacted", StatusList())
}
