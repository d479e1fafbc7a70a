package chain

import "math/big"

// Observation is one raw transaction as seen on the network, before the
// monitor has classified it.
type Observation struct {
	Hash     string
	From     string
	To       string // empty for contract creation
	Value    *big.Int
	Payload  []byte
	GasPrice *big.Int
	GasLimit uint64
	Nonce    uint64
	ChainID  *big.Int
}

// Block carries the subset of block data the monitor walks.
type Block struct {
	Number       uint64
	Hash         string
	Transactions []Observation
}

// DecodedCall is the result of decoding a contract call payload against a
// registered ABI.
type DecodedCall struct {
	Method string
	Args   []any
}

// Submission is the minimal transaction handed to the wallet collaborator
// for broadcast.
type Submission struct {
	To       string
	Value    *big.Int
	Payload  []byte
	GasLimit uint64
	Nonce    uint64
}
