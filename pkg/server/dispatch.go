package server

import (
	"context"
	"time"

	"github.com/surrealdb/surrealblog/internal/codec"
	"github.com/surrealdb/surrealblog/pkg/models"
	"github.com/surrealdb/surrealblog/pkg/rpc"
)

// method runs one RPC method. Params are still loosely typed; c converts them.
type method func(ctx context.Context, c codec.Codec, params []any) (any, error)

// call runs req and wraps the outcome in a response carrying the request id.
func (s *Server) call(ctx context.Context, c codec.Codec, req *rpc.Request, transport string) rpc.Response {
	if req.Method == "" {
		return rpc.Response{ID: req.ID, Error: rpc.InvalidRequest("missing method")}
	}

	m, ok := s.methods[req.Method]
	if !ok {
		s.logger.Debug("Unknown RPC method", "method", req.Method, "transport", transport)
		return rpc.Response{ID: req.ID, Error: rpc.MethodNotFound(req.Method)}
	}

	start := time.Now()
	result, err := m(ctx, c, req.Params)
	if err != nil {
		rpcErr := rpc.FromError(err)
		s.logger.Debug("RPC call failed",
			"method", req.Method,
			"transport", transport,
			"code", rpcErr.Code,
			"error", rpcErr.Message)
		return rpc.Response{ID: req.ID, Error: rpcErr}
	}

	s.logger.Debug("RPC call",
		"method", req.Method,
		"transport", transport,
		"duration", time.Since(start).String())
	return rpc.Response{ID: req.ID, Result: result}
}

func (s *Server) methodTable() map[string]method {
	r := s.resolver

	return map[string]method{
		rpc.MethodUsers: func(ctx context.Context, c codec.Codec, params []any) (any, error) {
			query, err := optionalString(c, params)
			if err != nil {
				return nil, err
			}
			return r.Users(ctx, query), nil
		},
		rpc.MethodPosts: func(ctx context.Context, c codec.Codec, params []any) (any, error) {
			query, err := optionalString(c, params)
			if err != nil {
				return nil, err
			}
			return r.Posts(ctx, query), nil
		},
		rpc.MethodComments: func(ctx context.Context, _ codec.Codec, _ []any) (any, error) {
			return r.Comments(ctx), nil
		},
		rpc.MethodMe: func(ctx context.Context, _ codec.Codec, _ []any) (any, error) {
			return r.Me(ctx), nil
		},
		rpc.MethodPost: func(ctx context.Context, _ codec.Codec, _ []any) (any, error) {
			return r.Post(ctx), nil
		},

		rpc.MethodCreateUser: create(r.CreateUser),
		rpc.MethodUpdateUser: update(r.UpdateUser),
		rpc.MethodDeleteUser: byID(r.DeleteUser),

		rpc.MethodCreatePost: create(r.CreatePost),
		rpc.MethodUpdatePost: update(r.UpdatePost),
		rpc.MethodDeletePost: byID(r.DeletePost),

		rpc.MethodCreateComment: create(r.CreateComment),
		rpc.MethodUpdateComment: update(r.UpdateComment),
		rpc.MethodDeleteComment: byID(r.DeleteComment),

		rpc.MethodPostAuthor: byID(func(ctx context.Context, id string) (models.User, error) {
			post, err := r.PostByID(ctx, id)
			if err != nil {
				return models.User{}, err
			}
			return r.PostAuthor(ctx, post)
		}),
		rpc.MethodPostComments: byID(func(ctx context.Context, id string) ([]models.Comment, error) {
			post, err := r.PostByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return r.PostComments(ctx, post), nil
		}),
		rpc.MethodCommentAuthor: byID(func(ctx context.Context, id string) (models.User, error) {
			comment, err := r.CommentByID(ctx, id)
			if err != nil {
				return models.User{}, err
			}
			return r.CommentAuthor(ctx, comment)
		}),
		rpc.MethodCommentPost: byID(func(ctx context.Context, id string) (models.Post, error) {
			comment, err := r.CommentByID(ctx, id)
			if err != nil {
				return models.Post{}, err
			}
			return r.CommentPost(ctx, comment)
		}),
		rpc.MethodUserPosts: byID(func(ctx context.Context, id string) ([]models.Post, error) {
			user, err := r.UserByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return r.UserPosts(ctx, user), nil
		}),
		rpc.MethodUserComments: byID(func(ctx context.Context, id string) ([]models.Comment, error) {
			user, err := r.UserByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return r.UserComments(ctx, user), nil
		}),
	}
}

// create adapts a resolver call taking [data].
func create[In, Out any](fn func(context.Context, In) (Out, error)) method {
	return func(ctx context.Context, c codec.Codec, params []any) (any, error) {
		if len(params) != 1 {
			return nil, rpc.InvalidParams("expected [data], got %d params", len(params))
		}
		var in In
		if err := decodeParam(c, params, 0, &in); err != nil {
			return nil, err
		}
		return fn(ctx, in)
	}
}

// update adapts a resolver call taking [id, data].
func update[In, Out any](fn func(context.Context, string, In) (Out, error)) method {
	return func(ctx context.Context, c codec.Codec, params []any) (any, error) {
		if len(params) != 2 {
			return nil, rpc.InvalidParams("expected [id, data], got %d params", len(params))
		}
		var id string
		if err := decodeParam(c, params, 0, &id); err != nil {
			return nil, err
		}
		var in In
		if err := decodeParam(c, params, 1, &in); err != nil {
			return nil, err
		}
		return fn(ctx, id, in)
	}
}

// byID adapts a resolver call taking [id].
func byID[Out any](fn func(context.Context, string) (Out, error)) method {
	return func(ctx context.Context, c codec.Codec, params []any) (any, error) {
		if len(params) != 1 {
			return nil, rpc.InvalidParams("expected [id], got %d params", len(params))
		}
		var id string
		if err := decodeParam(c, params, 0, &id); err != nil {
			return nil, err
		}
		return fn(ctx, id)
	}
}

func decodeParam(c codec.Codec, params []any, i int, dst any) error {
	if params[i] == nil {
		return rpc.InvalidParams("param %d is null", i)
	}
	if err := codec.Convert(c, params[i], dst); err != nil {
		return rpc.InvalidParams("param %d: %v", i, err)
	}
	return nil
}

// optionalString decodes an optional leading string param. Absent and null are both nil.
func optionalString(c codec.Codec, params []any) (*string, error) {
	if len(params) > 1 {
		return nil, rpc.InvalidParams("expected at most one param, got %d", len(params))
	}
	if len(params) == 0 || params[0] == nil {
		return nil, nil
	}
	var s string
	if err := decodeParam(c, params, 0, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
