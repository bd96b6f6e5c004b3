package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/pkg/retrier"
)

const solDecimals = 9

// defaultSolanaRPCURLs are tried in order; public endpoints rate-limit
// aggressively, so having several to fail over between matters more here
// than for the exchange APIs.
var defaultSolanaRPCURLs = []string{
	"https://api.mainnet-beta.solana.com",
	"https://rpc.ankr.com/solana",
	"https://solana-api.projectserum.com",
	"https://rpc.solana.com",
}

// ErrSolanaRateLimited marks a 429 from an RPC endpoint; the retrier backs
// off and retries only this class of failure before failing over.
var ErrSolanaRateLimited = errors.New("solana rpc rate limit exceeded")

// SolanaClient is a minimal JSON-RPC client for reading wallet balances.
// It holds a list of RPC endpoints: a request is retried with backoff
// against the current endpoint when rate-limited, and moves to the next
// endpoint when the current one is exhausted or unreachable. The endpoint
// that answered last is tried first on subsequent requests.
type SolanaClient struct {
	rpcURLs []string
	current int
	logger  *zap.Logger
	http    *http.Client
	retrier *retrier.Retrier
}

// NewSolanaClient builds a client for the given RPC endpoints; an empty list
// falls back to the public mainnet providers.
func NewSolanaClient(rpcURLs []string, logger *zap.Logger) *SolanaClient {
	if len(rpcURLs) == 0 {
		rpcURLs = defaultSolanaRPCURLs
	}
	return &SolanaClient{
		rpcURLs: rpcURLs,
		logger:  logger,
		http:    newHTTPClient(),
		retrier: retrier.New(
			retrier.WithInitialInterval(2*time.Second),
			retrier.WithMaxRetries(3),
			retrier.WithRetryIf(func(err error) bool {
				return errors.Is(err, ErrSolanaRateLimited)
			}),
		),
	}
}

type solanaRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type solanaRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Balance returns the native SOL balance of the account.
func (c *SolanaClient) Balance(ctx context.Context, account string) (decimal.Decimal, error) {
	var result struct {
		Value json.Number `json:"value"`
	}
	if err := c.call(ctx, "getBalance", []any{account}, &result); err != nil {
		return decimal.Zero, err
	}
	lamports, err := decimal.NewFromString(result.Value.String())
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to parse lamports")
	}
	return lamports.Shift(-solDecimals), nil
}

// TokenBalance returns the balance of the SPL token with the given mint,
// already scaled by the token's own decimals. A wallet without a token
// account for the mint holds zero.
func (c *SolanaClient) TokenBalance(ctx context.Context, account, mint string) (decimal.Decimal, error) {
	params := []any{
		account,
		map[string]string{"mint": mint},
		map[string]string{"encoding": "jsonParsed"},
	}

	var result struct {
		Value []struct {
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							TokenAmount struct {
								Amount   string `json:"amount"`
								Decimals int32  `json:"decimals"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getTokenAccountsByOwner", params, &result); err != nil {
		return decimal.Zero, err
	}
	if len(result.Value) == 0 {
		return decimal.Zero, nil
	}

	amount := result.Value[0].Account.Data.Parsed.Info.TokenAmount
	raw, err := decimal.NewFromString(amount.Amount)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to parse token amount for mint %s", mint)
	}
	return raw.Shift(-amount.Decimals), nil
}

// call tries the endpoints in order, starting from the last one that
// answered. Each endpoint gets the full rate-limit retry budget before the
// next one is attempted.
func (c *SolanaClient) call(ctx context.Context, method string, params []any, result any) error {
	var lastErr error
	for i := 0; i < len(c.rpcURLs); i++ {
		idx := (c.current + i) % len(c.rpcURLs)
		url := c.rpcURLs[idx]

		err := c.retrier.Do(ctx, func(ctx context.Context) error {
			return c.request(ctx, url, method, params, result)
		})
		if err == nil {
			c.current = idx
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		lastErr = err
		c.logger.Warn("solana rpc endpoint failed, trying next",
			zap.String("endpoint", url),
			zap.String("method", method),
			zap.Error(err))
	}
	return errors.Wrap(lastErr, "all solana rpc endpoints failed")
}

func (c *SolanaClient) request(ctx context.Context, url, method string, params []any, result any) error {
	payload, err := json.Marshal(solanaRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("solana rpc rate limited, backing off", zap.String("method", method))
		return ErrSolanaRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("solana rpc returned %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *solanaRPCError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrap(err, "failed to decode solana rpc response")
	}
	if envelope.Error != nil {
		if strings.Contains(envelope.Error.Message, "Too many requests") {
			return ErrSolanaRateLimited
		}
		return errors.Errorf("solana rpc error %d: %s", envelope.Error.Code, envelope.Error.Message)
	}
	return json.Unmarshal(envelope.Result, result)
}
