package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadOnlyPolicy(t *testing.T) {
	assert.True(t, readOnly.allows(actionList, 0, 0))
	assert.True(t, readOnly.allows(actionRetrieve, 1, 2))

	// Mutations are denied regardless of identity.
	assert.False(t, readOnly.allows(actionCreate, 1, 1))
	assert.False(t, readOnly.allows(actionUpdate, 1, 1))
	assert.False(t, readOnly.allows(actionDelete, 1, 1))
}

func TestAuthorOrReadOnlyPolicy(t *testing.T) {
	assert.True(t, authorOrReadOnly.allows(actionList, 0, 0))
	assert.True(t, authorOrReadOnly.allows(actionRetrieve, 0, 5))

	assert.True(t, authorOrReadOnly.allows(actionCreate, 1, 0))
	assert.False(t, authorOrReadOnly.allows(actionCreate, 0, 0))

	assert.True(t, authorOrReadOnly.allows(actionUpdate, 5, 5))
	assert.False(t, authorOrReadOnly.allows(actionUpdate, 5, 6))
	assert.True(t, authorOrReadOnly.allows(actionDelete, 5, 5))
	assert.False(t, authorOrReadOnly.allows(actionDelete, 0, 0))
}
