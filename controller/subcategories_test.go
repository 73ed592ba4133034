package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/models"
)

func TestSubcategoriesCRUD(t *testing.T) {
	_, a := startBackend(t)

	rec := &Recorder{}
	ctrl := NewSubcategories(a, rec)
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())
	assert.Empty(t, ctrl.All())

	require.NoError(t, ctrl.Add("Sides"))
	require.Len(t, ctrl.All(), 1)
	created := ctrl.All()[0]
	assert.Equal(t, "Sides", created.Name)
	assert.NotEmpty(t, created.ID)

	require.NoError(t, ctrl.Edit(created.ID, "Small Plates"))
	assert.Equal(t, "Small Plates", ctrl.All()[0].Name)
	assert.Equal(t, created.ID, ctrl.All()[0].ID)

	require.NoError(t, ctrl.Delete(created.ID))
	assert.Empty(t, ctrl.All())

	assert.Equal(t, []string{
		"Subcategory added successfully!",
		"Subcategory updated successfully!",
		"Subcategory deleted successfully!",
	}, rec.Successes)
}

func TestSubcategoryAddRequiresName(t *testing.T) {
	_, a := startBackend(t)

	rec := &Recorder{}
	ctrl := NewSubcategories(a, rec)
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	var vErr *models.ValidationError
	err := ctrl.Add("  ")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Subcategory name is required", ctrl.FormError())
	assert.Empty(t, rec.Errors)
}

func TestSubcategoryDeleteMissingSurfacesToast(t *testing.T) {
	_, a := startBackend(t)

	rec := &Recorder{}
	ctrl := NewSubcategories(a, rec)
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	require.Error(t, ctrl.Delete("no-such-id"))
	assert.Equal(t, []string{"Unable to delete subcategory!"}, rec.Errors)
}

func TestDraftIDIsTransient(t *testing.T) {
	id := DraftID()
	assert.NotEmpty(t, id)
	// Millisecond timestamps, not server ids; long enough to not
	// collide with seeded uuids.
	assert.Regexp(t, `^\d{13}$`, id)
}
