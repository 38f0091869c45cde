// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package grpcclient provides a gRPC-backed implementation of the identity API.
// Calls are unary and carry google.protobuf.Struct payloads, so the client
// needs no generated stubs: the method name selects the operation and the
// struct fields mirror the GraphQL schema (email, password in; id, jwt,
// username, email out).
package grpcclient

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"chatty/cli/internal/backend/model"
	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/logging"
	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Full method names served by the identity service.
const (
	MethodLogin      = "/chatty.Identity/Login"
	MethodSignup     = "/chatty.Identity/Signup"
	MethodGetUser    = "/chatty.Identity/GetUser"
	MethodGetVersion = "/chatty.Identity/GetVersion"
)

// Options configures a Client.
type Options struct {
	// Addr is host:port, or any gRPC target such as "passthrough:///name".
	Addr string
	// Insecure disables TLS.
	Insecure bool
	// Timeout bounds every call; zero means the caller's context only.
	Timeout     time.Duration
	DialOptions []grpc.DialOption
	Logger      *slog.Logger
}

// Client implements the backend API over gRPC. The connection is created on
// first use and shared by all calls.
type Client struct {
	opts Options
	log  *slog.Logger

	mu   sync.Mutex
	conn *grpc.ClientConn
}

// New returns a Client; no connection is made until the first call.
func New(opts Options) *Client {
	return &Client{opts: opts, log: logging.OrDiscard(opts.Logger)}
}

// target derives SNI host and ensures a default port for bare host names.
func (c *Client) target() (target, host string) {
	addr := c.opts.Addr
	if strings.Contains(addr, "://") {
		return addr, ""
	}
	host = addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
		return addr, host
	}
	return net.JoinHostPort(addr, "443"), host
}

func (c *Client) connect() (*grpc.ClientConn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn, nil
	}

	target, host := c.target()
	var creds credentials.TransportCredentials
	if c.opts.Insecure {
		creds = insecure.NewCredentials()
	} else {
		creds = credentials.NewTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
	}
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, c.opts.DialOptions...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return conn, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) invoke(ctx context.Context, method, token string, in map[string]any) (*structpb.Struct, error) {
	conn, err := c.connect()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailed, "Cannot connect to the identity service", err)
	}
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}
	reqID := uuid.NewString()
	md := metadata.Pairs("x-request-id", reqID)
	if token != "" {
		md.Set("authorization", "Bearer "+token)
	}
	ctx = metadata.NewOutgoingContext(ctx, md)

	out := &structpb.Struct{}
	start := time.Now()
	if err := conn.Invoke(ctx, method, req, out); err != nil {
		c.log.Debug("grpc call failed", "method", method, "request_id", reqID, "error", logging.Mask(err.Error()))
		kind := apperrors.TransportFailed
		switch logging.ClassifyGRPCError(err) {
		case logging.GRPCErrorRejected, logging.GRPCErrorAuth:
			kind = apperrors.RequestRejected
		}
		return nil, apperrors.Wrap(kind, logging.GRPCReason(err), err)
	}
	c.log.Debug("grpc call completed", "method", method, "request_id", reqID, "latency_ms", time.Since(start).Milliseconds())
	return out, nil
}

// Login calls Identity/Login and returns the established session.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (session.Session, error) {
	return c.authenticate(ctx, MethodLogin, creds)
}

// Signup calls Identity/Signup and returns the established session.
func (c *Client) Signup(ctx context.Context, creds model.Credentials) (session.Session, error) {
	return c.authenticate(ctx, MethodSignup, creds)
}

func (c *Client) authenticate(ctx context.Context, method string, creds model.Credentials) (session.Session, error) {
	out, err := c.invoke(ctx, method, "", map[string]any{
		"email":    creds.Email,
		"password": creds.Password,
	})
	if err != nil {
		return session.Session{}, apperrors.AsAuthFailure(err)
	}
	u := userFromStruct(out)
	s, err := session.New(u.ID, u.JWT)
	if err != nil || !s.Present() {
		return session.Session{}, apperrors.Wrap(apperrors.AuthenticationFailed, "The server returned an incomplete session", err)
	}
	return s, nil
}

// GetUser calls Identity/GetUser with the session token.
func (c *Client) GetUser(ctx context.Context, s session.Session) (profile.Profile, error) {
	if !s.Present() {
		return profile.Profile{}, apperrors.New(apperrors.InvalidSession, "not logged in")
	}
	out, err := c.invoke(ctx, MethodGetUser, s.Token, map[string]any{"id": s.Identity})
	if err != nil {
		return profile.Profile{}, err
	}
	u := userFromStruct(out)
	return profile.Profile{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// GetVersion calls Identity/GetVersion.
func (c *Client) GetVersion(ctx context.Context) (string, error) {
	out, err := c.invoke(ctx, MethodGetVersion, "", map[string]any{})
	if err != nil {
		return "", err
	}
	if v := stringField(out, "version"); v != "" {
		return v, nil
	}
	return "unknown", nil
}

func userFromStruct(s *structpb.Struct) model.User {
	return model.User{
		ID:       stringField(s, "id"),
		JWT:      stringField(s, "jwt"),
		Username: stringField(s, "username"),
		Email:    stringField(s, "email"),
	}
}

// stringField reads a string or number field as text.
func stringField(s *structpb.Struct, key string) string {
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
	}
	return ""
}
