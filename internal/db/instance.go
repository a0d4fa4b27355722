package db

import "context"

// Instance holds the server wide signing key used for outgoing webhook deliveries.
type Instance interface {
	LoadSigningKey(ctx context.Context) (privatePem string, err error)
}
