// Package server exposes a resolver over HTTP and WebSocket.
//
// Routes:
//
//	GET  /health  - liveness and collection sizes
//	POST /rpc     - one request per call, encoded as CBOR or JSON by Content-Type
//	GET  /rpc     - WebSocket upgrade, encoding picked by the format query parameter
//
// Both RPC routes speak the envelope of package rpc and share one method table.
// Live queries are only available on WebSocket connections, since events are pushed
// to the connection that started them. Closing a connection ends its live queries.
package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/lxzan/gws"
	"github.com/surrealdb/surrealblog/internal/codec"
	"github.com/surrealdb/surrealblog/pkg/logger"
	"github.com/surrealdb/surrealblog/pkg/resolver"
	"github.com/surrealdb/surrealblog/pkg/rpc"
)

// MaxRequestSize limits the body of POST /rpc.
const MaxRequestSize = 1 << 20

// CloseGoingAway is sent to WebSocket clients when the server shuts down.
const CloseGoingAway = 1001

type Option func(*Server)

// WithLogger sets the logger for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultFormat sets the WebSocket encoding used when the client does not ask for one.
func WithDefaultFormat(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.defaultFormat = name
		}
	}
}

// WithCountInterval sets the tick period of count live queries.
func WithCountInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.countInterval = d
		}
	}
}

// Server routes RPC calls to a resolver.
type Server struct {
	resolver      *resolver.Resolver
	logger        logger.Logger
	router        *mux.Router
	upgrader      *gws.Upgrader
	methods       map[string]method
	defaultFormat string
	countInterval time.Duration

	mu      sync.Mutex
	sockets map[*gws.Conn]*session
	closed  bool
}

// New returns a server for r. Invalid options are ignored; an unknown default format
// is reported by the first WebSocket upgrade that relies on it.
func New(r *resolver.Resolver, opts ...Option) *Server {
	s := &Server{
		resolver:      r,
		logger:        logger.Nop(),
		defaultFormat: codec.FormatCBOR,
		countInterval: resolver.DefaultCountInterval,
		sockets:       make(map[*gws.Conn]*session),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.methods = s.methodTable()
	s.upgrader = gws.NewUpgrader(&socketHandler{server: s}, &gws.ServerOption{})

	s.router = mux.NewRouter()
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/rpc", s.handleRPC).Methods(http.MethodPost)
	s.router.HandleFunc("/rpc", s.handleUpgrade).Methods(http.MethodGet)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close ends every WebSocket connection and its live queries. http.Server.Shutdown does not
// track hijacked connections, so callers shutting down should call Close as well.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	sockets := make([]*gws.Conn, 0, len(s.sockets))
	for socket := range s.sockets {
		sockets = append(sockets, socket)
	}
	s.mu.Unlock()

	for _, socket := range sockets {
		if err := socket.WriteClose(CloseGoingAway, []byte("server shutting down")); err != nil {
			s.logger.Debug("Error writing close frame", "error", err)
		}
		socket.NetConn().Close()
	}
}

// Connections returns the number of open WebSocket connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sockets)
}

type health struct {
	Status   string `json:"status"`
	Users    int    `json:"users"`
	Posts    int    `json:"posts"`
	Comments int    `json:"comments"`
	Sockets  int    `json:"sockets"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.resolver.Snapshot()
	respond(w, codec.NewJSON(), http.StatusOK, health{
		Status:   "ok",
		Users:    len(snap.Users),
		Posts:    len(snap.Posts),
		Comments: len(snap.Comments),
		Sockets:  s.Connections(),
	})
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	c, err := requestCodec(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		respond(w, c, http.StatusOK, rpc.Response{Error: rpc.ParseError(err)})
		return
	}

	var req rpc.Request
	if err := c.Unmarshal(body, &req); err != nil {
		respond(w, c, http.StatusOK, rpc.Response{Error: rpc.ParseError(err)})
		return
	}

	if req.Method == rpc.MethodLive || req.Method == rpc.MethodKill {
		respond(w, c, http.StatusOK, rpc.Response{
			ID:    req.ID,
			Error: rpc.InvalidRequest("live queries require a WebSocket connection"),
		})
		return
	}

	respond(w, c, http.StatusOK, s.call(r.Context(), c, &req, "http"))
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.defaultFormat
	}
	c, err := codec.ByName(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}

	socket, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	socket.Session().Store(sessionKey, newSession(c))
	go socket.ReadLoop()
}

// requestCodec picks the codec from the Content-Type header. A missing header means JSON.
func requestCodec(r *http.Request) (codec.Codec, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return codec.NewJSON(), nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, err
	}
	c := codec.ByContentType(mediaType)
	if c == nil {
		return nil, errors.New("unsupported content type " + mediaType)
	}
	return c, nil
}

func respond(w http.ResponseWriter, c codec.Codec, status int, v any) {
	data, err := c.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
