package emass

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/secureonelabs/saf/internal/endpoint"
	"github.com/secureonelabs/saf/internal/logging"
)

// Invoker runs catalog variants against eMASS. The client is created on the
// first call, so commands that only render help never need a configuration.
type Invoker struct {
	connect func() (*Client, error)

	once      sync.Once
	client    *Client
	clientErr error
}

// NewInvoker returns an invoker that obtains its client from connect.
func NewInvoker(connect func() (*Client, error)) *Invoker {
	return &Invoker{connect: connect}
}

// ConfigConnector loads and validates the connection config from envFile and
// builds a client with the given request timeout.
func ConfigConnector(envFile string, timeout time.Duration) func() (*Client, error) {
	return func() (*Client, error) {
		cfg, err := LoadConfig(envFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return NewClient(cfg, timeout)
	}
}

// Invoke implements endpoint.Invoker.
func (inv *Invoker) Invoke(ctx context.Context, def *endpoint.EndpointDefinition, v *endpoint.VariantDefinition, args endpoint.Args) endpoint.Outcome {
	call, ok := callers[callerKey(def.Name, v.Action)]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrNoCaller, callerKey(def.Name, v.Action))
		logging.Error("%v", err)
		return endpoint.Failure(def.Label, err)
	}

	inv.once.Do(func() {
		inv.client, inv.clientErr = inv.connect()
	})
	if inv.clientErr != nil {
		return endpoint.Failure(def.Label, inv.clientErr)
	}

	logging.Info("Requesting %s (%s)", def.Label, v.Action)
	body, err := call(ctx, inv.client, args)
	if err != nil {
		return endpoint.Failure(def.Label, err)
	}
	return endpoint.Success(def.Label, body)
}
