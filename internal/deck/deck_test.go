package deck

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipes(n int) []client.Recipe {
	out := make([]client.Recipe, n)
	for i := range out {
		out[i] = client.Recipe{ID: uuid.New(), Title: string(rune('A' + i))}
	}
	return out
}

func TestDeckLifecycle(t *testing.T) {
	d := New()
	assert.Equal(t, Loading, d.State())
	assert.Nil(t, d.Current())
	assert.False(t, d.Advance())

	rs := recipes(3)
	d.Load(rs)
	assert.Equal(t, Active, d.State())
	require.NotNil(t, d.Current())
	assert.Equal(t, rs[0].ID, d.Current().ID)
	require.NotNil(t, d.Next())
	assert.Equal(t, rs[1].ID, d.Next().ID)

	for i := 1; i <= 3; i++ {
		require.True(t, d.Advance())
		assert.Equal(t, i, d.Cursor())
	}

	assert.Equal(t, Exhausted, d.State())
	assert.Nil(t, d.Current())
	assert.Nil(t, d.Next())

	// The cursor never runs past the end
	assert.False(t, d.Advance())
	assert.Equal(t, d.Len(), d.Cursor())
}

func TestDeckNextOnLastCard(t *testing.T) {
	d := New()
	d.Load(recipes(2))
	require.True(t, d.Advance())
	assert.NotNil(t, d.Current())
	assert.Nil(t, d.Next())
}

func TestDeckEmptyLoad(t *testing.T) {
	d := New()
	d.Load(nil)
	assert.Equal(t, Exhausted, d.State())
	assert.Equal(t, 0, d.Cursor())
}

func TestDeckReload(t *testing.T) {
	d := New()
	d.Load(recipes(1))
	require.True(t, d.Advance())
	require.Equal(t, Exhausted, d.State())

	fresh := recipes(2)
	d.Load(fresh)
	assert.Equal(t, Active, d.State())
	assert.Equal(t, 0, d.Cursor())
	assert.Equal(t, fresh[0].ID, d.Current().ID)
}

func TestDeckCopiesInput(t *testing.T) {
	rs := recipes(1)
	d := New()
	d.Load(rs)
	rs[0].Title = "changed"
	assert.Equal(t, "A", d.Current().Title)
}
