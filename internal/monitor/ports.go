package monitor

import (
	"context"

	"txgate/internal/chain"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name ChainSource . ChainSource
type ChainSource interface {
	Latest(ctx context.Context) (uint64, error)
	BlockByNumber(ctx context.Context, number uint64) (*chain.Block, error)
	TransactionByHash(ctx context.Context, hash string) (chain.Observation, bool, error)
	SubscribeHeads(ctx context.Context) (<-chan uint64, error)
}

//counterfeiter:generate -o fake -fake-name ABIRegistry . ABIRegistry
type ABIRegistry interface {
	Known(address string) bool
	Decode(address string, payload []byte) (*chain.DecodedCall, error)
}
