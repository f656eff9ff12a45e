package geyser

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	connectTimeout = 10 * time.Second
	callTimeout    = 10 * time.Second

	subscribeMethod = "/geyser.Geyser/Subscribe"
)

// Client owns the gRPC channel to a Geyser endpoint. It only builds the
// channel and opens subscribe streams; connection recovery lives in the
// stream package.
type Client struct {
	endpoint string
	conn     *grpc.ClientConn
	health   grpc_health_v1.HealthClient
}

// NewClient validates the credential, dials the endpoint and returns a
// connected client. The dial blocks for at most 10s.
func NewClient(ctx context.Context, endpoint, xToken string) (*Client, error) {
	if err := validateXToken(xToken); err != nil {
		return nil, err
	}

	target, useTLS := parseTarget(endpoint)

	opts := []grpc.DialOption{
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second,
			Timeout:             10 * time.Second,
			PermitWithoutStream: true,
		}),
	}

	if useTLS {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	if xToken != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(&tokenAuth{
			token:      xToken,
			requireTLS: useTLS,
		}))
	}

	// Wait for the channel to come up before returning
	opts = append(opts, grpc.WithBlock())

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, err := grpc.DialContext(dialCtx, target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial geyser endpoint %s: %w", target, err)
	}

	return &Client{
		endpoint: endpoint,
		conn:     conn,
		health:   grpc_health_v1.NewHealthClient(conn),
	}, nil
}

// Endpoint returns the endpoint address the client was built with.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Subscribe opens the bidirectional subscribe stream and sends the initial
// request. The returned stream is owned by the caller.
func (c *Client) Subscribe(ctx context.Context, req *SubscribeRequest) (*Stream, error) {
	desc := &grpc.StreamDesc{
		StreamName:    "Subscribe",
		ServerStreams: true,
		ClientStreams: true,
	}

	cs, err := c.conn.NewStream(ctx, desc, subscribeMethod)
	if err != nil {
		return nil, fmt.Errorf("failed to open subscribe stream: %w", err)
	}

	s := &Stream{stream: cs}
	if err := s.Send(req); err != nil {
		_ = s.CloseSend()
		return nil, fmt.Errorf("failed to send subscribe request: %w", err)
	}

	return s, nil
}

// HealthCheck probes the server's gRPC health service with the fixed
// per-call timeout.
func (c *Client) HealthCheck(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.health.Check(callCtx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("health check: server not serving (%s)", resp.Status)
	}
	return nil
}

// Close tears down the underlying channel.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Stream is a typed wrapper over the raw bidirectional subscribe stream.
type Stream struct {
	stream grpc.ClientStream
}

// Send sends a request on the open stream.
func (s *Stream) Send(req *SubscribeRequest) error {
	return s.stream.SendMsg(req)
}

// Recv blocks for the next inbound update.
func (s *Stream) Recv() (*SubscribeUpdate, error) {
	update := &SubscribeUpdate{}
	if err := s.stream.RecvMsg(update); err != nil {
		return nil, err
	}
	return update, nil
}

// CloseSend closes the send half of the stream.
func (s *Stream) CloseSend() error {
	return s.stream.CloseSend()
}

// parseTarget strips the URL scheme and decides whether to use TLS. TLS is
// assumed for https endpoints and for the conventional :443 port.
func parseTarget(endpoint string) (target string, useTLS bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	case strings.HasSuffix(endpoint, ":443"):
		return endpoint, true
	default:
		return endpoint, false
	}
}

// tokenAuth attaches the x-token header to every RPC.
type tokenAuth struct {
	token      string
	requireTLS bool
}

func (t *tokenAuth) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return map[string]string{"x-token": t.token}, nil
}

func (t *tokenAuth) RequireTransportSecurity() bool {
	return t.requireTLS
}
