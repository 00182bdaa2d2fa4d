package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealblog/pkg/models"
	"github.com/surrealdb/surrealblog/pkg/store"
)

const blogYAML = `
users:
  - id: "1"
    name: Jesse
    email: jesse@example.com
    age: 38
  - id: "2"
    name: Dylan
    email: dylan@example.com
posts:
  - id: "1"
    title: Hello
    body: World
    published: true
    author: "1"
comments:
  - id: "1"
    text: nice post!
    author: "2"
    post: "1"
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(blogYAML))
	require.NoError(t, err)

	require.Len(t, doc.Users, 2)
	require.NotNil(t, doc.Users[0].Age)
	assert.Equal(t, 38, *doc.Users[0].Age)
	assert.Nil(t, doc.Users[1].Age)

	require.Len(t, doc.Posts, 1)
	assert.Equal(t, models.Post{ID: "1", Title: "Hello", Body: "World", Published: true, AuthorID: "1"}, doc.Posts[0])

	require.Len(t, doc.Comments, 1)
	assert.Equal(t, "2", doc.Comments[0].AuthorID)
	assert.Equal(t, "1", doc.Comments[0].PostID)
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Users)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("users:\n  - id: \"1\"\n    nickname: j\n"))
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(blogYAML), 0o600))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Users, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	doc, err := Parse([]byte(blogYAML))
	require.NoError(t, err)

	s := store.New()
	require.NoError(t, Load(s, doc))

	assert.Equal(t, 2, s.Users.Len())
	assert.Equal(t, 1, s.Posts.Len())
	assert.Equal(t, 1, s.Comments.Len())
}

func TestLoad_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		msg  string
	}{
		{
			name: "duplicate user id",
			doc: Document{Users: []models.User{
				{ID: "1", Name: "A", Email: "a@x.com"},
				{ID: "1", Name: "B", Email: "b@x.com"},
			}},
			msg: `user "1": duplicate id`,
		},
		{
			name: "duplicate email",
			doc: Document{Users: []models.User{
				{ID: "1", Name: "A", Email: "a@x.com"},
				{ID: "2", Name: "B", Email: "a@x.com"},
			}},
			msg: `email "a@x.com" already used by user "1"`,
		},
		{
			name: "missing author",
			doc: Document{Posts: []models.Post{
				{ID: "1", Title: "T", Body: "B", AuthorID: "9"},
			}},
			msg: `post "1": author "9" does not exist`,
		},
		{
			name: "missing post",
			doc: Document{
				Users:    []models.User{{ID: "1", Name: "A", Email: "a@x.com"}},
				Comments: []models.Comment{{ID: "1", Text: "x", AuthorID: "1", PostID: "9"}},
			},
			msg: `comment "1": post "9" does not exist`,
		},
		{
			name: "empty title",
			doc: Document{
				Users: []models.User{{ID: "1", Name: "A", Email: "a@x.com"}},
				Posts: []models.Post{{ID: "1", Body: "B", AuthorID: "1"}},
			},
			msg: `post "1": title is required`,
		},
		{
			name: "empty body",
			doc: Document{
				Users: []models.User{{ID: "1", Name: "A", Email: "a@x.com"}},
				Posts: []models.Post{{ID: "1", Title: "T", AuthorID: "1"}},
			},
			msg: `post "1": body is required`,
		},
		{
			name: "empty comment text",
			doc: Document{
				Users:    []models.User{{ID: "1", Name: "A", Email: "a@x.com"}},
				Posts:    []models.Post{{ID: "1", Title: "T", Body: "B", AuthorID: "1"}},
				Comments: []models.Comment{{ID: "1", AuthorID: "1", PostID: "1"}},
			},
			msg: `comment "1": text is required`,
		},
		{
			name: "missing id",
			doc:  Document{Users: []models.User{{Name: "A", Email: "a@x.com"}}},
			msg:  "users[0]: id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New()
			err := Load(s, tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.msg)

			assert.Zero(t, s.Users.Len())
			assert.Zero(t, s.Posts.Len())
			assert.Zero(t, s.Comments.Len())
		})
	}
}

func TestLoad_ChecksAgainstExistingContent(t *testing.T) {
	s := store.New()
	require.NoError(t, Load(s, Demo()))

	err := Load(s, Document{Users: []models.User{{ID: "9", Name: "Copy", Email: "jesse@example.com"}}})
	require.Error(t, err)
	assert.Equal(t, 3, s.Users.Len())

	// References to already loaded entities are fine.
	require.NoError(t, Load(s, Document{Comments: []models.Comment{
		{ID: "9", Text: "late", AuthorID: "3", PostID: "3"},
	}}))
	assert.Equal(t, 5, s.Comments.Len())
}

func TestDemo(t *testing.T) {
	doc := Demo()
	require.NoError(t, Validate(doc))

	assert.Len(t, doc.Users, 3)
	assert.Len(t, doc.Posts, 3)
	assert.Len(t, doc.Comments, 4)

	require.NotNil(t, doc.Users[0].Age)
	assert.Equal(t, 38, *doc.Users[0].Age)
	assert.False(t, doc.Posts[1].Published)
}
