// Package delivery defines the contract every serving surface implements.
package delivery

import "context"

// Delivery is a long-running serving component, collected by the entrypoint
// under the "deliveries" group and started concurrently.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
