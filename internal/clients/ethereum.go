package clients

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const ethDecimals = 18

// ERC-20 function selectors.
var (
	selectorBalanceOf = common.Hex2Bytes("70a08231")
	selectorDecimals  = common.Hex2Bytes("313ce567")
)

// EthereumClient reads native and ERC-20 balances over an Ethereum JSON-RPC
// endpoint via go-ethereum's ethclient.
type EthereumClient struct {
	client *ethclient.Client
}

func NewEthereumClient(rpcURL string) (*EthereumClient, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial ethereum rpc %s", rpcURL)
	}
	return &EthereumClient{client: client}, nil
}

// Balance returns the native ETH balance of the address at the latest block.
func (c *EthereumClient) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	wei, err := c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to get eth balance")
	}
	return decimal.NewFromBigInt(wei, -ethDecimals), nil
}

// TokenBalance returns the ERC-20 balance of holder for the token contract,
// scaled by the token's decimals() value.
func (c *EthereumClient) TokenBalance(ctx context.Context, token, holder string) (decimal.Decimal, error) {
	contract := common.HexToAddress(token)

	data := make([]byte, 0, 4+32)
	data = append(data, selectorBalanceOf...)
	data = append(data, common.LeftPadBytes(common.HexToAddress(holder).Bytes(), 32)...)

	raw, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "balanceOf call failed for token %s", token)
	}

	decimalsRaw, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: selectorDecimals}, nil)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "decimals call failed for token %s", token)
	}
	if len(raw) == 0 || len(decimalsRaw) == 0 {
		return decimal.Zero, errors.Errorf("token %s returned empty call result", token)
	}

	amount := new(big.Int).SetBytes(raw)
	tokenDecimals := new(big.Int).SetBytes(decimalsRaw).Int64()
	return decimal.NewFromBigInt(amount, -int32(tokenDecimals)), nil
}

// Close releases the underlying RPC connection.
func (c *EthereumClient) Close() {
	c.client.Close()
}
