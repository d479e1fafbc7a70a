package chain_test

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"txgate/internal/chain"
	"txgate/internal/chain/fake"
)

var _ = Describe("NodeBroadcaster", func() {
	var (
		fakeClient  *fake.EthClient
		fakeSigner  *fake.Signer
		broadcaster *chain.NodeBroadcaster
		ctx         context.Context

		chainID    *big.Int
		submission chain.Submission
	)

	BeforeEach(func() {
		fakeClient = new(fake.EthClient)
		fakeSigner = new(fake.Signer)
		broadcaster = chain.NewNodeBroadcaster(zap.NewNop().Sugar(), fakeClient, fakeSigner, big.NewInt(1_000_000_000))
		ctx = context.Background()

		chainID = big.NewInt(5)
		fakeClient.ChainIDReturns(chainID, nil)

		submission = chain.Submission{
			To:       "0x1111111111111111111111111111111111111111",
			Value:    big.NewInt(2500),
			GasLimit: 21000,
			Nonce:    3,
		}

		privateKey, err := crypto.GenerateKey()
		Expect(err).NotTo(HaveOccurred())
		fakeSigner.SignTxStub = func(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
			return types.SignTx(tx, types.LatestSignerForChainID(chainID), privateKey)
		}
	})

	It("signs through the wallet collaborator and sends", func() {
		hash, err := broadcaster.Broadcast(ctx, submission)
		Expect(err).NotTo(HaveOccurred())
		Expect(hash).NotTo(BeEmpty())

		signedTx, argChainID := fakeSigner.SignTxArgsForCall(0)
		Expect(argChainID).To(Equal(chainID))
		Expect(signedTx.Nonce()).To(Equal(submission.Nonce))
		Expect(signedTx.To().Hex()).To(Equal(common.HexToAddress(submission.To).Hex()))
		Expect(signedTx.Value()).To(Equal(submission.Value))

		Expect(fakeClient.SendTransactionCallCount()).To(Equal(1))
		_, sentTx := fakeClient.SendTransactionArgsForCall(0)
		Expect(sentTx.Hash().Hex()).To(Equal(hash))
	})

	It("refuses to broadcast without a configured signer", func() {
		broadcaster = chain.NewNodeBroadcaster(zap.NewNop().Sugar(), fakeClient, nil, nil)

		_, err := broadcaster.Broadcast(ctx, submission)
		Expect(err).To(MatchError(chain.ErrNoSigner))
		Expect(fakeClient.SendTransactionCallCount()).To(Equal(0))
	})

	It("wraps a signing failure", func() {
		fakeSigner.SignTxStub = nil
		fakeSigner.SignTxReturns(nil, errors.New("locked wallet"))

		_, err := broadcaster.Broadcast(ctx, submission)
		Expect(err).To(MatchError(ContainSubstring("locked wallet")))
		Expect(fakeClient.SendTransactionCallCount()).To(Equal(0))
	})

	It("wraps a send failure", func() {
		fakeClient.SendTransactionReturns(errors.New("already known"))

		_, err := broadcaster.Broadcast(ctx, submission)
		Expect(err).To(MatchError(ContainSubstring("already known")))
	})
})
