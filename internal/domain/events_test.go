package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	data := map[string]any{"productId": "p-1", "status": "PUBLISHED"}

	env := NewEnvelope(EventProductApproved, "p-1", data, "editor-1")

	_, err := uuid.Parse(env.ID)
	require.NoError(t, err)
	assert.Equal(t, EventProductApproved, env.Type)
	assert.Equal(t, AggregateTypeProduct, env.AggregateType)
	assert.Equal(t, "p-1", env.AggregateID)
	require.NotNil(t, env.Actor)
	assert.Equal(t, "editor-1", *env.Actor)
	assert.Equal(t, data, env.Data)
	assert.False(t, env.OccurredAt.IsZero())
}

func TestNewEnvelope_EmptyActorIsNil(t *testing.T) {
	env := NewEnvelope(EventProductDeleted, "p-2", map[string]any{}, "")

	assert.Nil(t, env.Actor)
}

func TestNewEnvelope_UniqueIDs(t *testing.T) {
	a := NewEnvelope(EventProductCreated, "p-3", nil, "u")
	b := NewEnvelope(EventProductCreated, "p-3", nil, "u")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" editor ")
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, role)

	role, err = ParseRole("PROVIDER")
	require.NoError(t, err)
	assert.Equal(t, RoleProvider, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}
