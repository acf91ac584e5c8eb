package httpclient

import (
	"net/http"
	"sync"
	"time"
)

// Pool manages a fixed-size pool of HTTP clients used for outbound gateway
// calls (SMS, mail relay)
type Pool struct {
	clients chan *http.Client
	factory func() *http.Client
}

// NewPool creates a pool pre-populated with maxClients clients
func NewPool(maxClients int) *Pool {
	pool := &Pool{
		clients: make(chan *http.Client, maxClients),
		factory: newClient,
	}

	for i := 0; i < maxClients; i++ {
		pool.clients <- pool.factory()
	}

	return pool
}

func newClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Get retrieves an HTTP client from the pool, creating one when the pool
// is drained
func (p *Pool) Get() *http.Client {
	select {
	case client := <-p.clients:
		return client
	default:
		return p.factory()
	}
}

// Put returns an HTTP client to the pool; surplus clients are discarded
func (p *Pool) Put(client *http.Client) {
	select {
	case p.clients <- client:
	default:
	}
}

var (
	globalPool *Pool
	once       sync.Once
)

// GetGlobalPool returns the shared HTTP client pool
func GetGlobalPool() *Pool {
	once.Do(func() {
		globalPool = NewPool(10)
	})
	return globalPool
}
