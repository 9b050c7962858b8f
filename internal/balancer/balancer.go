package balancer

import (
	"context"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/balancer"
	"google.golang.org/grpc/balancer/base"
	"google.golang.org/grpc/metadata"

	"hrw/internal/rendezvous"
)

// Name is the balancer name to use in a gRPC service config:
// {"loadBalancingConfig": [{"rendezvous": {}}]}
const Name = "rendezvous"

// KeyHeader is the outgoing metadata header carrying the routing key.
const KeyHeader = "x-rendezvous-key"

func init() {
	balancer.Register(NewBuilder(rendezvous.NewSipHash()))
}

type keyCtxKey struct{}

// WithKey returns a context whose RPCs are routed by key.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, keyCtxKey{}, key)
}

// NewBuilder returns a balancer builder that routes each RPC to the ready
// backend with the highest rendezvous score for its key. The same build
// is reused for every picker, so a key keeps its backend as long as the
// backend stays ready.
func NewBuilder(build rendezvous.HashBuilder) balancer.Builder {
	return base.NewBalancerBuilder(Name, &pickerBuilder{build: build}, base.Config{HealthCheck: true})
}

type pickerBuilder struct {
	build rendezvous.HashBuilder
}

func (pb *pickerBuilder) Build(info base.PickerBuildInfo) balancer.Picker {
	if len(info.ReadySCs) == 0 {
		return base.NewErrPicker(balancer.ErrNoSubConnAvailable)
	}

	sel := rendezvous.FromNodesWithHasher[string](pb.build)
	conns := make(map[string]balancer.SubConn, len(info.ReadySCs))
	for sc, sci := range info.ReadySCs {
		addr := sci.Address.Addr
		if !sel.AddNode(addr) {
			continue
		}
		conns[addr] = sc
	}

	logrus.WithFields(logrus.Fields{
		"func_name": "Build",
		"balancer":  Name,
		"ready":     sel.Len(),
	}).Debug("rendezvous picker rebuilt")

	return &picker{sel: sel, conns: conns}
}

type picker struct {
	sel   *rendezvous.Selector[string]
	conns map[string]balancer.SubConn
}

func (p *picker) Pick(info balancer.PickInfo) (balancer.PickResult, error) {
	addr, ok := p.sel.PickTop(routingKey(info))
	if !ok {
		return balancer.PickResult{}, balancer.ErrNoSubConnAvailable
	}
	return balancer.PickResult{SubConn: p.conns[addr]}, nil
}

// routingKey prefers the context value, then the metadata header, then
// the method name.
func routingKey(info balancer.PickInfo) string {
	if info.Ctx != nil {
		if key, ok := info.Ctx.Value(keyCtxKey{}).(string); ok {
			return key
		}
		if md, ok := metadata.FromOutgoingContext(info.Ctx); ok {
			if vals := md.Get(KeyHeader); len(vals) > 0 {
				return vals[0]
			}
		}
	}
	return info.FullMethodName
}
