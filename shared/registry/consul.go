// Package registry registers the API with a Consul agent so other services
// and load balancers can discover it. Registration is optional and only
// happens when a Consul address is configured.
package registry

import (
	"fmt"

	"github.com/hashicorp/consul/api"
)

// ConsulRegistry wraps a Consul client together with the registered service ID.
type ConsulRegistry struct {
	client    *api.Client
	serviceID string
}

// NewConsulRegistry creates a registry client for the given agent address.
func NewConsulRegistry(addr string) (*ConsulRegistry, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &ConsulRegistry{client: client}, nil
}

// Register announces the service with an HTTP health check against /health.
func (r *ConsulRegistry) Register(name, host string, port int) error {
	r.serviceID = fmt.Sprintf("%s-%s-%d", name, host, port)

	registration := &api.AgentServiceRegistration{
		ID:      r.serviceID,
		Name:    name,
		Address: host,
		Port:    port,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", host, port),
			Interval:                       "10s",
			Timeout:                        "3s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	return r.client.Agent().ServiceRegister(registration)
}

// Deregister removes the service from the agent. Safe to call when Register
// was never invoked.
func (r *ConsulRegistry) Deregister() error {
	if r.serviceID == "" {
		return nil
	}

	return r.client.Agent().ServiceDeregister(r.serviceID)
}
