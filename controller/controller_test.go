package controller

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJoinsAllFetches(t *testing.T) {
	srv, a := startBackend(t)
	srv.SeedDemo()

	ctrl := NewCategories(a, &Recorder{})
	defer ctrl.Close()

	require.NoError(t, ctrl.Load())
	assert.Equal(t, Ready, ctrl.Phase())
	assert.Len(t, ctrl.Visible(), 2)
	assert.Len(t, ctrl.Subcategories(), 2)
}

func TestLoadFailureLeavesNoPartialState(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/category", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"categories":            []fiber.Map{{"_id": "c1", "name": "Drinks", "status": "active"}},
			"totalCategories":       1,
			"totalActiveCategories": 1,
		})
	})
	app.Get("/subcategory", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "boom",
		})
	})

	ctrl := NewCategories(serveAPI(t, app), &Recorder{})
	defer ctrl.Close()

	err := ctrl.Load()
	require.Error(t, err)
	assert.Equal(t, Errored, ctrl.Phase())
	assert.Equal(t, "boom", ctrl.LoadError())

	// The category fetch succeeded, but the join failed, so nothing is
	// committed.
	assert.Empty(t, ctrl.Visible())
	assert.Empty(t, ctrl.Subcategories())
}

func TestRetryAfterError(t *testing.T) {
	fail := true
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/category", func(c *fiber.Ctx) error {
		if fail {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "try again later",
			})
		}
		return c.JSON(fiber.Map{
			"categories": []fiber.Map{{"_id": "c1", "name": "Drinks", "status": "active"}},
		})
	})
	app.Get("/subcategory", func(c *fiber.Ctx) error {
		return c.JSON([]fiber.Map{})
	})

	ctrl := NewCategories(serveAPI(t, app), &Recorder{})
	defer ctrl.Close()

	require.Error(t, ctrl.Load())
	assert.Equal(t, Errored, ctrl.Phase())

	fail = false
	require.NoError(t, ctrl.Retry())
	assert.Equal(t, Ready, ctrl.Phase())
	assert.Len(t, ctrl.Visible(), 1)
}

func TestCloseDiscardsLateResponses(t *testing.T) {
	release := make(chan struct{})
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/category", func(c *fiber.Ctx) error {
		<-release
		return c.JSON(fiber.Map{
			"categories": []fiber.Map{{"_id": "c1", "name": "Drinks", "status": "active"}},
		})
	})
	app.Get("/subcategory", func(c *fiber.Ctx) error {
		return c.JSON([]fiber.Map{})
	})

	ctrl := NewCategories(serveAPI(t, app), &Recorder{})

	done := make(chan error, 1)
	go func() { done <- ctrl.Load() }()

	time.Sleep(50 * time.Millisecond)
	ctrl.Close()
	close(release)

	err := <-done
	require.Error(t, err)

	// The page never reaches Ready or Errored after Close; the results
	// are dropped.
	assert.Equal(t, Loading, ctrl.Phase())
	assert.Empty(t, ctrl.Visible())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "unloaded", Unloaded.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "error", Errored.String())
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, matchesSearch("", "anything"))
	assert.True(t, matchesSearch("TEA", "Iced Tea"))
	assert.True(t, matchesSearch("tea", "nope", "Iced Tea"))
	assert.False(t, matchesSearch("coffee", "Iced Tea"))
}
