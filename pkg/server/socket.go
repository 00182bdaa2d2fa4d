package server

import (
	"context"
	"sync"

	"github.com/lxzan/gws"
	"github.com/surrealdb/surrealblog/internal/codec"
	"github.com/surrealdb/surrealblog/pkg/pubsub"
	"github.com/surrealdb/surrealblog/pkg/rpc"
)

const sessionKey = "session"

// session is the per-connection state of a WebSocket client.
type session struct {
	codec  codec.Codec
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	lives map[string]*pubsub.Subscription
}

func newSession(c codec.Codec) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		codec:  c,
		ctx:    ctx,
		cancel: cancel,
		lives:  make(map[string]*pubsub.Subscription),
	}
}

func (s *session) opcode() gws.Opcode {
	if s.codec.Name() == codec.FormatJSON {
		return gws.OpcodeText
	}
	return gws.OpcodeBinary
}

func (s *session) addLive(sub *pubsub.Subscription) {
	s.mu.Lock()
	s.lives[sub.ID()] = sub
	s.mu.Unlock()
}

func (s *session) takeLive(id string) (*pubsub.Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.lives[id]
	delete(s.lives, id)
	return sub, ok
}

// socketHandler implements gws.Event for connections accepted by a Server.
type socketHandler struct {
	server *Server
}

func loadSession(socket *gws.Conn) *session {
	v, ok := socket.Session().Load(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session)
	return sess
}

func (h *socketHandler) OnOpen(socket *gws.Conn) {
	sess := loadSession(socket)
	if sess == nil {
		return
	}

	h.server.mu.Lock()
	h.server.sockets[socket] = sess
	h.server.mu.Unlock()

	h.server.logger.Debug("WebSocket connected",
		"remote", socket.RemoteAddr().String(),
		"format", sess.codec.Name())
}

func (h *socketHandler) OnClose(socket *gws.Conn, err error) {
	h.server.mu.Lock()
	sess := h.server.sockets[socket]
	delete(h.server.sockets, socket)
	h.server.mu.Unlock()

	if sess != nil {
		// Cancelling the session context ends every live query of the connection.
		sess.cancel()
	}

	h.server.logger.Debug("WebSocket closed", "reason", closeReason(err))
}

func (h *socketHandler) OnPing(socket *gws.Conn, payload []byte) {
	if err := socket.WritePong(payload); err != nil {
		h.server.logger.Debug("Error writing pong", "error", err)
	}
}

func (h *socketHandler) OnPong(*gws.Conn, []byte) {}

func (h *socketHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	sess := loadSession(socket)
	if sess == nil {
		return
	}

	var req rpc.Request
	if err := sess.codec.Unmarshal(message.Bytes(), &req); err != nil {
		h.send(socket, sess, rpc.Response{Error: rpc.ParseError(err)})
		return
	}

	var (
		resp rpc.Response
		sub  *pubsub.Subscription
	)
	switch req.Method {
	case rpc.MethodLive:
		resp, sub = h.live(sess, &req)
	case rpc.MethodKill:
		resp = h.kill(sess, &req)
	default:
		resp = h.server.call(sess.ctx, sess.codec, &req, "ws")
	}
	h.send(socket, sess, resp)

	// Forwarding starts only once the client holds the live id.
	if sub != nil {
		go h.forward(socket, sess, sub)
	}
}

func (h *socketHandler) send(socket *gws.Conn, sess *session, resp rpc.Response) {
	data, err := sess.codec.Marshal(resp)
	if err != nil {
		h.server.logger.Error("Failed to encode response", "error", err)
		return
	}
	if err := socket.WriteMessage(sess.opcode(), data); err != nil {
		h.server.logger.Debug("Error writing response", "error", err)
	}
}

// live starts a live query. Params are [topic] or, for comments, [topic, postId].
// The caller starts forwarding sub after sending the response.
func (h *socketHandler) live(sess *session, req *rpc.Request) (rpc.Response, *pubsub.Subscription) {
	if len(req.Params) == 0 {
		return rpc.Response{ID: req.ID, Error: rpc.InvalidParams("expected [topic, postId?]")}, nil
	}

	var topic string
	if err := decodeParam(sess.codec, req.Params, 0, &topic); err != nil {
		return rpc.Response{ID: req.ID, Error: rpc.FromError(err)}, nil
	}

	var sub *pubsub.Subscription
	switch topic {
	case rpc.LivePost:
		sub = h.server.resolver.SubscribePost(sess.ctx)
	case rpc.LiveComment:
		if len(req.Params) != 2 {
			return rpc.Response{ID: req.ID, Error: rpc.InvalidParams("expected [%q, postId]", rpc.LiveComment)}, nil
		}
		var postID string
		if err := decodeParam(sess.codec, req.Params, 1, &postID); err != nil {
			return rpc.Response{ID: req.ID, Error: rpc.FromError(err)}, nil
		}
		var err error
		if sub, err = h.server.resolver.SubscribeComment(sess.ctx, postID); err != nil {
			return rpc.Response{ID: req.ID, Error: rpc.FromError(err)}, nil
		}
	case rpc.LiveCount:
		sub = h.server.resolver.SubscribeCount(sess.ctx, h.server.countInterval)
	default:
		return rpc.Response{ID: req.ID, Error: rpc.InvalidParams("unknown live topic %q", topic)}, nil
	}

	sess.addLive(sub)

	h.server.logger.Debug("Live query started", "live", sub.ID(), "topic", sub.Topic())
	return rpc.Response{ID: req.ID, Result: sub.ID()}, sub
}

func (h *socketHandler) kill(sess *session, req *rpc.Request) rpc.Response {
	if len(req.Params) != 1 {
		return rpc.Response{ID: req.ID, Error: rpc.InvalidParams("expected [liveId]")}
	}
	var id string
	if err := decodeParam(sess.codec, req.Params, 0, &id); err != nil {
		return rpc.Response{ID: req.ID, Error: rpc.FromError(err)}
	}

	sub, ok := sess.takeLive(id)
	if !ok {
		return rpc.Response{ID: req.ID, Error: &rpc.Error{
			Code:    rpc.CodeNotFound,
			Message: "Live query not found",
			Kind:    rpc.KindNotFound,
		}}
	}
	sub.Close()

	h.server.logger.Debug("Live query killed", "live", id)
	return rpc.Response{ID: req.ID}
}

// forward pushes the events of sub to socket until the subscription ends.
func (h *socketHandler) forward(socket *gws.Conn, sess *session, sub *pubsub.Subscription) {
	defer sess.takeLive(sub.ID())

	for ev := range sub.Events() {
		h.send(socket, sess, rpc.Response{Result: rpc.Notification{
			ID:     sub.ID(),
			Action: ev.Mutation,
			Result: ev.Data,
		}})
	}
}

func closeReason(err error) string {
	if err == nil {
		return "none"
	}
	return err.Error()
}
