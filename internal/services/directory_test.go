package services

import (
	"context"
	"testing"

	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectory_ResolveOncePerLogin(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockLookup := new(MockUserLookup)
	mockLookup.On("GetUser", ctx, "alice").Return(models.User{Login: "alice", Name: "Alice Smith"}, nil).Once()

	directory := NewUserDirectory(mockLookup, nil)

	// Act
	require.NoError(t, directory.Resolve(ctx, "alice"))
	require.NoError(t, directory.Resolve(ctx, "alice"))

	// Assert
	assert.Equal(t, "Alice Smith", directory.DisplayName("alice"))
	mockLookup.AssertExpectations(t)
}

func TestUserDirectory_CorrectionTableSkipsLookup(t *testing.T) {
	ctx := context.Background()
	mockLookup := new(MockUserLookup)

	directory := NewUserDirectory(mockLookup, map[string]string{"alice": "Alicia Corrected"})

	require.NoError(t, directory.Resolve(ctx, "alice"))

	assert.Equal(t, "Alicia Corrected", directory.DisplayName("alice"))
	mockLookup.AssertNotCalled(t, "GetUser", ctx, "alice")
}

func TestUserDirectory_EmptyNameFallsBackToLogin(t *testing.T) {
	ctx := context.Background()
	mockLookup := new(MockUserLookup)
	mockLookup.On("GetUser", ctx, "alice").Return(models.User{Login: "alice"}, nil).Once()

	directory := NewUserDirectory(mockLookup, nil)

	require.NoError(t, directory.Resolve(ctx, "alice"))

	assert.Equal(t, "alice", directory.DisplayName("alice"))
}

func TestUserDirectory_DisplayNameForUnknownLogin(t *testing.T) {
	directory := NewUserDirectory(new(MockUserLookup), nil)

	assert.Equal(t, "ghost", directory.DisplayName("ghost"))
}

func TestUserDirectory_LookupErrorPropagates(t *testing.T) {
	ctx := context.Background()
	mockLookup := new(MockUserLookup)
	mockLookup.On("GetUser", ctx, "alice").Return(models.User{}, assert.AnError)

	directory := NewUserDirectory(mockLookup, nil)

	err := directory.Resolve(ctx, "alice")

	assert.Error(t, err)
}
