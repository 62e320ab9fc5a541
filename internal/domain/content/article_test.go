package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticle(t *testing.T) {
	a, err := NewArticle(" Tips Memilih Kopi ", "Isi artikel", "thumb.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Tips Memilih Kopi", a.Title)
	assert.Equal(t, "tips-memilih-kopi", a.Slug)
	assert.False(t, a.IsPublished(time.Now()))

	_, err = NewArticle("", "x", "")
	require.Error(t, err)
}

func TestArticle_Publish(t *testing.T) {
	a, err := NewArticle("Judul", "Isi", "")
	require.NoError(t, err)

	now := time.Now()
	a.Publish(now.Add(time.Hour))
	assert.False(t, a.IsPublished(now))
	assert.True(t, a.IsPublished(now.Add(2*time.Hour)))
}

func TestArticle_Excerpt(t *testing.T) {
	a := &Article{Body: "Kopi adalah minuman"}
	assert.Equal(t, "Kopi adalah minuman", a.Excerpt(50))
	assert.Equal(t, "Kopi...", a.Excerpt(5))
}
