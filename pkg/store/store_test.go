package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealblog/pkg/models"
)

func intPtr(v int) *int {
	return &v
}

func TestCollection_InsertAndFind(t *testing.T) {
	s := New()
	s.Users.Insert(models.User{ID: "1", Name: "Jesse", Email: "jesse@example.com"})
	s.Users.Insert(models.User{ID: "2", Name: "Dylan", Email: "dylan@example.com"})

	u, ok := s.Users.FindByID("2")
	require.True(t, ok)
	assert.Equal(t, "Dylan", u.Name)

	_, ok = s.Users.FindByID("3")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Users.Len())
}

func TestCollection_FindWherePreservesOrder(t *testing.T) {
	s := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Posts.Insert(models.Post{ID: id, Published: id != "b"})
	}

	published := s.Posts.FindWhere(func(p models.Post) bool { return p.Published })
	require.Len(t, published, 3)
	assert.Equal(t, "a", published[0].ID)
	assert.Equal(t, "c", published[1].ID)
	assert.Equal(t, "d", published[2].ID)

	none := s.Posts.FindWhere(func(models.Post) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCollection_ReturnsCopies(t *testing.T) {
	s := New()
	s.Users.Insert(models.User{ID: "1", Name: "Jesse", Age: intPtr(38)})

	u, _ := s.Users.FindByID("1")
	u.Name = "Changed"
	*u.Age = 99

	stored, _ := s.Users.FindByID("1")
	assert.Equal(t, "Jesse", stored.Name)
	assert.Equal(t, 38, *stored.Age)
}

func TestCollection_Update(t *testing.T) {
	s := New()
	s.Comments.Insert(models.Comment{ID: "1", Text: "nice post!"})

	updated, err := s.Comments.Update("1", func(c *models.Comment) {
		c.Text = "edited"
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	stored, _ := s.Comments.FindByID("1")
	assert.Equal(t, "edited", stored.Text)

	_, err = s.Comments.Update("2", func(*models.Comment) {})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCollection_RemoveByID(t *testing.T) {
	s := New()
	s.Posts.Insert(models.Post{ID: "1"})
	s.Posts.Insert(models.Post{ID: "2"})

	removed, err := s.Posts.RemoveByID("1")
	require.NoError(t, err)
	assert.Equal(t, "1", removed.ID)
	assert.Equal(t, 1, s.Posts.Len())

	_, err = s.Posts.RemoveByID("1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `post "1"`)
}

func TestCollection_RemoveWhere(t *testing.T) {
	s := New()
	s.Comments.Insert(models.Comment{ID: "1", PostID: "1"})
	s.Comments.Insert(models.Comment{ID: "2", PostID: "2"})
	s.Comments.Insert(models.Comment{ID: "3", PostID: "1"})
	s.Comments.Insert(models.Comment{ID: "4", PostID: "3"})

	removed := s.Comments.RemoveWhere(func(c models.Comment) bool { return c.PostID == "1" })
	require.Len(t, removed, 2)
	assert.Equal(t, "1", removed[0].ID)
	assert.Equal(t, "3", removed[1].ID)

	rest := s.Comments.All()
	require.Len(t, rest, 2)
	assert.Equal(t, "2", rest[0].ID)
	assert.Equal(t, "4", rest[1].ID)
}

func TestStore_Isolation(t *testing.T) {
	a, b := New(), New()
	a.Users.Insert(models.User{ID: "1"})

	assert.Equal(t, 1, a.Users.Len())
	assert.Equal(t, 0, b.Users.Len())
}

func TestStore_Snapshot(t *testing.T) {
	s := New()
	s.Users.Insert(models.User{ID: "1"})
	s.Posts.Insert(models.Post{ID: "1", AuthorID: "1"})

	snap := s.Snapshot()
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Posts, 1)
	assert.NotNil(t, snap.Comments)
	assert.Empty(t, snap.Comments)
}
