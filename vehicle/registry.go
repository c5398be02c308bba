package vehicle

import (
	"fmt"
	"sync"

	"github.com/uvolink/uvolink/api"
)

type registryKey struct {
	brand    api.Brand
	username string
}

// Registry shares one brand client per (brand, username) so all vehicles
// of an account reuse a single session
type Registry struct {
	mux     sync.Mutex
	clients map[registryKey]api.Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[registryKey]api.Client),
	}
}

// Get returns the existing client for the account or creates one
func (r *Registry) Get(brand api.Brand, username string, create func() (api.Client, error)) (api.Client, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	key := registryKey{brand, username}
	if client, ok := r.clients[key]; ok {
		return client, nil
	}

	client, err := create()
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", brand, err)
	}

	r.clients[key] = client
	return client, nil
}

// Remove drops the account's client, forcing a fresh session on next use
func (r *Registry) Remove(brand api.Brand, username string) {
	r.mux.Lock()
	defer r.mux.Unlock()

	delete(r.clients, registryKey{brand, username})
}
