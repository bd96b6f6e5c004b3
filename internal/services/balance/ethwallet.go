package balance

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type ethereumAPI interface {
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
	TokenBalance(ctx context.Context, token, holder string) (decimal.Decimal, error)
}

// EthWalletProvider reports an Ethereum address's native ETH balance plus the
// ERC-20 tokens listed in its contract table. Prices are left unresolved.
type EthWalletProvider struct {
	api     ethereumAPI
	address string
	// tokens maps ticker symbol to ERC-20 contract address.
	tokens map[string]string
}

func NewEthWalletProvider(api ethereumAPI, address string, tokens map[string]string) *EthWalletProvider {
	return &EthWalletProvider{api: api, address: address, tokens: tokens}
}

func (p *EthWalletProvider) Name() string { return "EthWallet" }

func (p *EthWalletProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	var records []domain.BalanceRecord

	eth, err := p.api.Balance(ctx, p.address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch eth balance")
	}
	if eth.IsPositive() {
		records = append(records, domain.NewBalanceRecord("ETH", eth, p.Name()))
	}

	symbols := make([]string, 0, len(p.tokens))
	for sym := range p.tokens {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		qty, err := p.api.TokenBalance(ctx, p.tokens[sym], p.address)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch erc20 balance for %s", sym)
		}
		if !qty.IsPositive() {
			continue
		}
		records = append(records, domain.NewBalanceRecord(sym, qty, p.Name()))
	}
	return records, nil
}
