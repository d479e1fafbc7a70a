package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// NodeSource adapts an Ethereum node client to the event source the monitor
// consumes: latest height, block walks, transaction lookups and an optional
// push subscription for new heads.
type NodeSource struct {
	logs   *zap.SugaredLogger
	client EthClient
}

func NewNodeSource(logger *zap.SugaredLogger, client EthClient) *NodeSource {
	return &NodeSource{
		logs:   logger,
		client: client,
	}
}

func (s *NodeSource) Latest(ctx context.Context) (uint64, error) {
	number, err := s.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch latest block number: %w", err)
	}
	return number, nil
}

// BlockByNumber fetches the block at the given height with its transactions
// converted into observations. Transactions whose sender cannot be recovered
// are skipped with a log entry.
func (s *NodeSource) BlockByNumber(ctx context.Context, number uint64) (*Block, error) {
	block, err := s.client.BlockByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return nil, fmt.Errorf("fetch block %d: %w", number, err)
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}

	observations := make([]Observation, 0, len(block.Transactions()))
	for _, tx := range block.Transactions() {
		obs, err := s.toObservation(tx, chainID)
		if err != nil {
			s.logs.Errorw("skipping transaction in block",
				"block", number,
				"hash", tx.Hash().Hex(),
				"error", err)
			continue
		}
		observations = append(observations, obs)
	}

	return &Block{
		Number:       block.NumberU64(),
		Hash:         block.Hash().Hex(),
		Transactions: observations,
	}, nil
}

// TransactionByHash fetches one transaction; the second return reports
// whether it is still pending.
func (s *NodeSource) TransactionByHash(ctx context.Context, hash string) (Observation, bool, error) {
	tx, pending, err := s.client.TransactionByHash(ctx, common.HexToHash(hash))
	if err != nil {
		return Observation{}, false, fmt.Errorf("fetch transaction %q: %w", hash, err)
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return Observation{}, false, fmt.Errorf("fetch chain id: %w", err)
	}

	obs, err := s.toObservation(tx, chainID)
	if err != nil {
		return Observation{}, false, fmt.Errorf("convert transaction %q: %w", hash, err)
	}
	return obs, pending, nil
}

// SubscribeHeads registers for new-head notifications and forwards block
// numbers until ctx is cancelled. Callers that receive an error fall back to
// polling the latest height.
func (s *NodeSource) SubscribeHeads(ctx context.Context) (<-chan uint64, error) {
	headers := make(chan *types.Header)
	sub, err := s.client.SubscribeNewHead(ctx, headers)
	if err != nil {
		return nil, fmt.Errorf("subscribe new heads: %w", err)
	}

	heights := make(chan uint64)
	go func() {
		defer close(heights)
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					s.logs.Errorw("head subscription dropped", "error", err)
				}
				return
			case header := <-headers:
				if header == nil {
					continue
				}
				select {
				case heights <- header.Number.Uint64():
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return heights, nil
}

func (s *NodeSource) toObservation(tx *types.Transaction, chainID *big.Int) (Observation, error) {
	signer := types.LatestSignerForChainID(chainID)
	from, err := types.Sender(signer, tx)
	if err != nil {
		return Observation{}, fmt.Errorf("recover sender: %w", err)
	}

	var to string
	if tx.To() != nil {
		to = tx.To().Hex()
	}

	return Observation{
		Hash:     tx.Hash().Hex(),
		From:     from.Hex(),
		To:       to,
		Value:    tx.Value(),
		Payload:  tx.Data(),
		GasPrice: tx.GasPrice(),
		GasLimit: tx.Gas(),
		Nonce:    tx.Nonce(),
		ChainID:  chainID,
	}, nil
}
