package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

func TestExtractJSONArray(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}

	t.Run("PlainArray", func(t *testing.T) {
		var items []item
		err := ExtractJSONArray(`[{"name":"Hawa Mahal"},{"name":"Amber Fort"}]`, &items)
		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "Hawa Mahal", items[0].Name)
	})

	t.Run("CodeFences", func(t *testing.T) {
		var items []item
		err := ExtractJSONArray("```json\n[{\"name\":\"City Palace\"}]\n```", &items)
		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("SurroundingProse", func(t *testing.T) {
		var items []item
		response := `Sure! Here are the attractions you asked for:
[{"name":"Jantar Mantar"}]
Let me know if you need anything else.`
		err := ExtractJSONArray(response, &items)
		assert.NoError(t, err)
		assert.Equal(t, "Jantar Mantar", items[0].Name)
	})

	t.Run("NoArrayPresent", func(t *testing.T) {
		var items []item
		err := ExtractJSONArray("I could not find any attractions.", &items)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrParseFailed))
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		var items []item
		err := ExtractJSONArray(`[{"name": "Broken"`, &items)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrParseFailed))
	})
}

func TestExtractJSONObject(t *testing.T) {
	type plan struct {
		Title string `json:"title"`
	}

	t.Run("ObjectWithProse", func(t *testing.T) {
		var p plan
		err := ExtractJSONObject("Here is your plan: {\"title\":\"Jaipur in 2 days\"} Enjoy!", &p)
		assert.NoError(t, err)
		assert.Equal(t, "Jaipur in 2 days", p.Title)
	})

	t.Run("EmptyResponse", func(t *testing.T) {
		var p plan
		err := ExtractJSONObject("", &p)
		assert.True(t, errors.Is(err, models.ErrParseFailed))
	})
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1,2]`, CleanJSONResponse("  [1,2]  "))
}
