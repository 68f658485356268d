package transport

import (
	"context"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the gRPC health service name of the simulator.
const ServiceName = "token42.v1.Simulator"

// HealthHandler implements grpc_health_v1.HealthServer.
type HealthHandler struct {
	healthpb.UnimplementedHealthServer
	ready func() bool
}

// NewHealthHandler returns a HealthHandler reporting SERVING while ready returns true. A nil
// ready is always ready.
func NewHealthHandler(ready func() bool) *HealthHandler {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &HealthHandler{ready: ready}
}

// Check reports server health.
func (h *HealthHandler) Check(_ context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}
	st := healthpb.HealthCheckResponse_SERVING
	if !h.ready() {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	return &healthpb.HealthCheckResponse{Status: st}, nil
}
