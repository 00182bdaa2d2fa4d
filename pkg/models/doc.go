// Package models defines the entities served by surrealblog and the inputs accepted by its mutations.
//
// There are three collections:
//
//   - [User]: a person with a unique email address
//   - [Post]: an article written by a user, visible to subscribers only while published
//   - [Comment]: a short text written by a user on a post
//
// Relations between entities are stored as plain identifiers ([Post.AuthorID], [Comment.AuthorID],
// [Comment.PostID]). Related entities are never embedded; they are derived on read by the
// [github.com/surrealdb/surrealblog/pkg/resolver] package so that they always reflect the current state.
//
// # Partial updates
//
// Update inputs wrap every field in [Optional], which tells an omitted field apart from a field
// explicitly set to its zero value. For example, decoding
//
//	{"age": 0}
//
// into an [UpdateUserInput] yields an Age that is present and set to 0, while decoding {}
// leaves Age absent so the stored value is kept.
package models
