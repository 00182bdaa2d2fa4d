// Package rpc defines the request, response and notification shapes exchanged with
// surrealblog clients, and the mapping from resolver failures to RPC error codes.
//
// The envelope follows JSON-RPC: a request carries an id, a method and positional params,
// and the response echoes the id with either a result or an error. Live notifications are
// responses without an id whose result is a [Notification].
package rpc

import (
	"errors"
	"fmt"

	"github.com/surrealdb/surrealblog/pkg/models"
	"github.com/surrealdb/surrealblog/pkg/resolver"
)

// Request is an incoming call.
type Request struct {
	ID     any    `json:"id" cbor:"id"`
	Method string `json:"method,omitempty" cbor:"method,omitempty"`
	Params []any  `json:"params,omitempty" cbor:"params,omitempty"`
}

// Response answers the request with the same ID. Exactly one of Error and Result is set.
type Response struct {
	ID     any    `json:"id" cbor:"id"`
	Error  *Error `json:"error,omitempty" cbor:"error,omitempty"`
	Result any    `json:"result,omitempty" cbor:"result,omitempty"`
}

// Notification is a live event pushed to the connection that started the live query ID.
type Notification struct {
	ID     string          `json:"id" cbor:"id"`
	Action models.Mutation `json:"action" cbor:"action"`
	Result any             `json:"result" cbor:"result"`
}

// Error codes. The negative range below -32000 is reserved by JSON-RPC.
const (
	CodeParse          = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603

	CodeValidation = -32000
	CodeNotFound   = -32001
	CodePolicy     = -32002
	CodeIntegrity  = -32003
)

// Error kinds carried next to the code so clients can branch without a code table.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindPolicy     = "policy"
	KindIntegrity  = "integrity"
	KindProtocol   = "protocol"
	KindInternal   = "internal"
)

// Error is the error member of a Response.
type Error struct {
	Code    int    `json:"code" cbor:"code"`
	Message string `json:"message,omitempty" cbor:"message,omitempty"`
	Kind    string `json:"kind,omitempty" cbor:"kind,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func newError(code int, kind, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Kind: kind}
}

// ParseError reports a message that could not be decoded.
func ParseError(err error) *Error {
	return newError(CodeParse, KindProtocol, "Parse error: %v", err)
}

// InvalidRequest reports a decoded message that is not a valid request.
func InvalidRequest(reason string) *Error {
	return newError(CodeInvalidRequest, KindProtocol, "Invalid request: %s", reason)
}

// MethodNotFound reports an unknown method.
func MethodNotFound(method string) *Error {
	return newError(CodeMethodNotFound, KindProtocol, "Method not found: %s", method)
}

// InvalidParams reports params of the wrong count or shape.
func InvalidParams(format string, args ...any) *Error {
	return newError(CodeInvalidParams, KindProtocol, "Invalid params: "+format, args...)
}

// FromError converts err into a wire error. Resolver failures keep their message and get
// the code of their kind. Anything unclassified becomes an internal error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	var msg string
	var rerr *resolver.Error
	if errors.As(err, &rerr) {
		msg = rerr.Message
	} else {
		msg = err.Error()
	}

	switch {
	case errors.Is(err, resolver.ErrValidation):
		return &Error{Code: CodeValidation, Message: msg, Kind: KindValidation}
	case errors.Is(err, resolver.ErrNotFound):
		return &Error{Code: CodeNotFound, Message: msg, Kind: KindNotFound}
	case errors.Is(err, resolver.ErrPolicy):
		return &Error{Code: CodePolicy, Message: msg, Kind: KindPolicy}
	case errors.Is(err, resolver.ErrIntegrity):
		return &Error{Code: CodeIntegrity, Message: msg, Kind: KindIntegrity}
	default:
		return &Error{Code: CodeInternal, Message: msg, Kind: KindInternal}
	}
}
