package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/models"
)

func TestBannersCRUD(t *testing.T) {
	_, a := startBackend(t)

	rec := &Recorder{}
	ctrl := NewBanners(a, rec)
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())
	assert.Empty(t, ctrl.All())

	require.NoError(t, ctrl.Add("Summer Specials", testFile("image")))
	require.Len(t, ctrl.All(), 1)
	created := ctrl.All()[0]
	assert.Equal(t, "Summer Specials", created.Name)
	assert.NotEmpty(t, created.Image.URL)

	// Renaming without a new image keeps the stored image.
	require.NoError(t, ctrl.Edit(created.ID, "Winter Specials", nil))
	after := ctrl.All()[0]
	assert.Equal(t, "Winter Specials", after.Name)
	assert.Equal(t, created.Image.URL, after.Image.URL)

	require.NoError(t, ctrl.Delete(created.ID))
	assert.Empty(t, ctrl.All())
}

func TestBannerAddRequiresNameAndImage(t *testing.T) {
	_, a := startBackend(t)

	rec := &Recorder{}
	ctrl := NewBanners(a, rec)
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	var vErr *models.ValidationError

	err := ctrl.Add("", testFile("image"))
	require.ErrorAs(t, err, &vErr)

	err = ctrl.Add("Summer Specials", nil)
	require.ErrorAs(t, err, &vErr)

	assert.Empty(t, ctrl.All())
	assert.Empty(t, rec.Successes)
}
