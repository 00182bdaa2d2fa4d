package resolver

import (
	"context"

	"github.com/surrealdb/surrealblog/pkg/models"
)

// CreateUser adds a user. The email must not belong to any existing user.
func (r *Resolver) CreateUser(_ context.Context, in models.CreateUserInput) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(in.Email, "") {
		return models.User{}, errEmailTaken
	}
	if in.Name == "" {
		return models.User{}, requiredError("Name")
	}
	if in.Email == "" {
		return models.User{}, requiredError("Email")
	}

	user := models.User{
		ID:    models.NewID(),
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	}.Clone()
	r.store.Users.Insert(user)

	r.logger.Debug("User created", "id", user.ID)
	return user, nil
}

// UpdateUser assigns the fields present in in to the user with the given id.
// A new email must not belong to a different user.
func (r *Resolver) UpdateUser(_ context.Context, id string, in models.UpdateUserInput) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.Users.FindByID(id); !ok {
		return models.User{}, errUserNotFound
	}

	email, hasEmail := in.Email.Get()
	if hasEmail && r.emailTaken(email, id) {
		return models.User{}, errEmailTaken
	}
	if name, ok := in.Name.Get(); ok && name == "" {
		return models.User{}, requiredError("Name")
	}
	if hasEmail && email == "" {
		return models.User{}, requiredError("Email")
	}

	user, err := r.store.Users.Update(id, func(u *models.User) {
		if email, ok := in.Email.Get(); ok {
			u.Email = email
		}
		if name, ok := in.Name.Get(); ok {
			u.Name = name
		}
		if age, ok := in.Age.Get(); ok {
			u.Age = copyInt(age)
		}
	})
	if err != nil {
		return models.User{}, errUserNotFound
	}

	r.logger.Debug("User updated", "id", id)
	return user, nil
}

// DeleteUser removes the user with the given id together with the posts they wrote,
// every comment on those posts, and every comment they wrote.
func (r *Resolver) DeleteUser(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.store.Users.RemoveByID(id)
	if err != nil {
		return models.User{}, errUserNotFound
	}

	posts := r.store.Posts.RemoveWhere(func(p models.Post) bool {
		return p.AuthorID == id
	})
	removedPosts := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		removedPosts[p.ID] = struct{}{}
	}

	comments := r.store.Comments.RemoveWhere(func(c models.Comment) bool {
		_, onRemovedPost := removedPosts[c.PostID]
		return onRemovedPost || c.AuthorID == id
	})

	r.logger.Debug("User deleted",
		"id", id,
		"posts", len(posts),
		"comments", len(comments))
	return user, nil
}

// emailTaken reports whether a user other than exceptID uses email.
func (r *Resolver) emailTaken(email, exceptID string) bool {
	return r.store.Users.Exists(func(u models.User) bool {
		return u.Email == email && u.ID != exceptID
	})
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
