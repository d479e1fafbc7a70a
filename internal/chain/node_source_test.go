package chain_test

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/trie"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"txgate/internal/chain"
	"txgate/internal/chain/fake"
)

var _ = Describe("NodeSource", func() {
	var (
		fakeClient *fake.EthClient
		source     *chain.NodeSource
		ctx        context.Context
		testErr    error

		chainID  *big.Int
		sender   common.Address
		signedTx *types.Transaction
	)

	BeforeEach(func() {
		fakeClient = new(fake.EthClient)
		source = chain.NewNodeSource(zap.NewNop().Sugar(), fakeClient)
		ctx = context.Background()
		testErr = errors.New("test error")

		privateKey, err := crypto.GenerateKey()
		Expect(err).NotTo(HaveOccurred())
		sender = crypto.PubkeyToAddress(privateKey.PublicKey)

		chainID = big.NewInt(5)
		signer := types.LatestSignerForChainID(chainID)

		to := common.HexToAddress("0x1111111111111111111111111111111111111111")
		tx := types.NewTransaction(3, to, big.NewInt(2500), 21000, big.NewInt(1_000_000_000), nil)
		signedTx, err = types.SignTx(tx, signer, privateKey)
		Expect(err).NotTo(HaveOccurred())

		fakeClient.ChainIDReturns(chainID, nil)
	})

	Describe("Latest", func() {
		It("returns the node's latest block number", func() {
			fakeClient.BlockNumberReturns(42, nil)

			latest, err := source.Latest(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(latest).To(Equal(uint64(42)))
		})

		It("wraps client errors", func() {
			fakeClient.BlockNumberReturns(0, testErr)

			_, err := source.Latest(ctx)
			Expect(err).To(MatchError(testErr))
		})
	})

	Describe("TransactionByHash", func() {
		It("converts the transaction into an observation", func() {
			fakeClient.TransactionByHashReturns(signedTx, true, nil)

			obs, pending, err := source.TransactionByHash(ctx, signedTx.Hash().Hex())
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(BeTrue())
			Expect(obs.Hash).To(Equal(signedTx.Hash().Hex()))
			Expect(obs.From).To(Equal(sender.Hex()))
			Expect(obs.To).To(Equal("0x1111111111111111111111111111111111111111"))
			Expect(obs.Value).To(Equal(big.NewInt(2500)))
			Expect(obs.GasLimit).To(Equal(uint64(21000)))
			Expect(obs.Nonce).To(Equal(uint64(3)))
			Expect(obs.ChainID).To(Equal(chainID))

			_, argHash := fakeClient.TransactionByHashArgsForCall(0)
			Expect(argHash).To(Equal(signedTx.Hash()))
		})

		It("wraps a lookup failure", func() {
			fakeClient.TransactionByHashReturns(nil, false, testErr)

			_, _, err := source.TransactionByHash(ctx, "0xabc")
			Expect(err).To(MatchError(testErr))
		})
	})

	Describe("BlockByNumber", func() {
		It("converts block transactions and skips unrecoverable senders", func() {
			unsigned := types.NewTransaction(0, common.Address{}, big.NewInt(0), 0, big.NewInt(0), nil)
			block := types.NewBlock(
				&types.Header{Number: big.NewInt(7)},
				&types.Body{Transactions: types.Transactions{signedTx, unsigned}},
				nil,
				trie.NewStackTrie(nil),
			)
			fakeClient.BlockByNumberReturns(block, nil)

			result, err := source.BlockByNumber(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Number).To(Equal(uint64(7)))
			Expect(result.Transactions).To(HaveLen(1))
			Expect(result.Transactions[0].Hash).To(Equal(signedTx.Hash().Hex()))
			Expect(result.Transactions[0].From).To(Equal(sender.Hex()))

			_, argNumber := fakeClient.BlockByNumberArgsForCall(0)
			Expect(argNumber).To(Equal(big.NewInt(7)))
		})

		It("wraps a fetch failure", func() {
			fakeClient.BlockByNumberReturns(nil, testErr)

			_, err := source.BlockByNumber(ctx, 7)
			Expect(err).To(MatchError(testErr))
		})
	})

	Describe("SubscribeHeads", func() {
		It("forwards new head numbers until the context ends", func() {
			var headers chan<- *types.Header
			fakeClient.SubscribeNewHeadStub = func(_ context.Context, ch chan<- *types.Header) (ethereum.Subscription, error) {
				headers = ch
				return event.NewSubscription(func(quit <-chan struct{}) error {
					<-quit
					return nil
				}), nil
			}

			runCtx, cancel := context.WithCancel(ctx)
			heights, err := source.SubscribeHeads(runCtx)
			Expect(err).NotTo(HaveOccurred())

			headers <- &types.Header{Number: big.NewInt(12)}
			Eventually(heights).Should(Receive(Equal(uint64(12))))

			cancel()
			Eventually(heights).Should(BeClosed())
		})

		It("reports when the node does not support subscriptions", func() {
			fakeClient.SubscribeNewHeadReturns(nil, testErr)

			_, err := source.SubscribeHeads(ctx)
			Expect(err).To(MatchError(testErr))
		})
	})
})
