package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

var ErrNoSigner = errors.New("no wallet signer configured")

// NodeBroadcaster builds a transaction from a submission, hands it to the
// wallet collaborator for signing and sends it through the node. Gas price is
// left to the node defaults carried in the submission's record.
type NodeBroadcaster struct {
	logs     *zap.SugaredLogger
	client   EthClient
	signer   Signer
	gasPrice *big.Int
}

func NewNodeBroadcaster(logger *zap.SugaredLogger, client EthClient, signer Signer, gasPrice *big.Int) *NodeBroadcaster {
	return &NodeBroadcaster{
		logs:     logger,
		client:   client,
		signer:   signer,
		gasPrice: gasPrice,
	}
}

// Broadcast submits the transaction and returns its hash.
func (b *NodeBroadcaster) Broadcast(ctx context.Context, sub Submission) (string, error) {
	if b.signer == nil {
		return "", ErrNoSigner
	}

	chainID, err := b.client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch chain id: %w", err)
	}

	to := common.HexToAddress(sub.To)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    sub.Nonce,
		To:       &to,
		Value:    sub.Value,
		Gas:      sub.GasLimit,
		GasPrice: b.gasPrice,
		Data:     sub.Payload,
	})

	signed, err := b.signer.SignTx(tx, chainID)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	if err := b.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	hash := signed.Hash().Hex()
	b.logs.Infow("transaction broadcast", "hash", hash, "to", sub.To)
	return hash, nil
}
