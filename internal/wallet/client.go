package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pathPublicKey    = "/v1/w3s/config/entity/publicKey"
	pathWallet       = "/v1/w3s/wallets/%s"
	pathBalances     = "/v1/w3s/wallets/%s/balances"
	pathTransfer     = "/v1/w3s/developer/transactions/transfer"
	pathTransaction  = "/v1/w3s/transactions/%s"
	pathTransactions = "/v1/w3s/transactions"

	usdcSymbol     = "USDC"
	tokenIDLength  = 36
	defaultFee     = "MEDIUM"
	maxErrorBody   = 4 << 10
	defaultTimeout = 30 * time.Second
)

var ErrTokenNotFound = errors.New("wallet: USDC token not found in wallet balances")

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("wallet provider returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("wallet provider returned %d", e.StatusCode)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Options struct {
	BaseURL    string
	APIKey     string
	TokenID    string
	Blockchain string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the custodial wallet provider's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	tokenID    string
	blockchain string
	http       *http.Client
	logger     *zap.Logger

	mu        sync.Mutex
	publicKey string
	// detected token ids per wallet when TokenID is not configured
	tokenIDs map[string]string
}

func NewClient(opts Options, logger ...*zap.Logger) *Client {
	l := zap.L().Named("wallet.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("wallet.client")
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	tokenID := strings.TrimSpace(opts.TokenID)
	if len(tokenID) != tokenIDLength {
		// anything else is treated as unset and detected from the wallet
		tokenID = ""
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		tokenID:    tokenID,
		blockchain: opts.Blockchain,
		http:       hc,
		logger:     l,
		tokenIDs:   make(map[string]string),
	}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wallet: marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("wallet: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wallet: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("wallet provider call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Code = env.Code
			apiErr.Message = env.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env envelope
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return fmt.Errorf("wallet: decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}

	dataDec := json.NewDecoder(bytes.NewReader(env.Data))
	dataDec.UseNumber()
	if err := dataDec.Decode(out); err != nil {
		return fmt.Errorf("wallet: decode data: %w", err)
	}
	return nil
}

// PublicKey fetches the provider's RSA key once and reuses it.
func (c *Client) PublicKey(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.publicKey
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	var data struct {
		PublicKey string `json:"publicKey"`
	}
	if err := c.do(ctx, http.MethodGet, pathPublicKey, nil, nil, &data); err != nil {
		return "", err
	}
	if data.PublicKey == "" {
		return "", ErrInvalidPublicKey
	}

	c.mu.Lock()
	c.publicKey = data.PublicKey
	c.mu.Unlock()
	return data.PublicKey, nil
}

// GetWallet describes the wallet: on-chain address, state and wallet set.
func (c *Client) GetWallet(ctx context.Context, walletID string) (WalletInfo, error) {
	var data struct {
		Wallet struct {
			ID          string `json:"id"`
			Address     string `json:"address"`
			State       string `json:"state"`
			WalletSetID string `json:"walletSetId"`
			Blockchain  string `json:"blockchain"`
		} `json:"wallet"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(pathWallet, url.PathEscape(walletID)), nil, nil, &data); err != nil {
		return WalletInfo{}, err
	}

	info := WalletInfo{
		ID:          data.Wallet.ID,
		Address:     data.Wallet.Address,
		State:       data.Wallet.State,
		WalletSetID: data.Wallet.WalletSetID,
		Blockchain:  data.Wallet.Blockchain,
	}
	if info.ID == "" {
		info.ID = walletID
	}
	return info, nil
}

type rawTokenBalance struct {
	Amount string `json:"amount"`
	Token  struct {
		ID         string `json:"id"`
		Address    string `json:"tokenAddress"`
		Blockchain string `json:"blockchain"`
		Symbol     string `json:"symbol"`
		Decimals   *int   `json:"decimals"`
	} `json:"token"`
}

func (c *Client) GetBalances(ctx context.Context, walletID string) ([]TokenBalance, error) {
	var data struct {
		TokenBalances []rawTokenBalance `json:"tokenBalances"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(pathBalances, url.PathEscape(walletID)), nil, nil, &data); err != nil {
		return nil, err
	}

	out := make([]TokenBalance, 0, len(data.TokenBalances))
	for _, tb := range data.TokenBalances {
		amount, err := decimal.NewFromString(tb.Amount)
		if err != nil {
			amount = decimal.Zero
		}
		symbol := tb.Token.Symbol
		if symbol == "" {
			symbol = "UNKNOWN"
		}
		out = append(out, TokenBalance{
			TokenID:      tb.Token.ID,
			TokenAddress: tb.Token.Address,
			Blockchain:   tb.Token.Blockchain,
			Symbol:       symbol,
			Decimals:     tb.Token.Decimals,
			Amount:       amount,
		})
	}
	return out, nil
}

// GetBalance returns the wallet's USDC balance; a wallet holding no USDC has zero.
func (c *Client) GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	balances, err := c.GetBalances(ctx, walletID)
	if err != nil {
		return decimal.Zero, err
	}
	if tb, ok := c.pickUSDC(balances); ok {
		return tb.Amount, nil
	}
	return decimal.Zero, nil
}

// pickUSDC prefers the configured token id, then USDC on the configured chain,
// then any USDC.
func (c *Client) pickUSDC(balances []TokenBalance) (TokenBalance, bool) {
	if c.tokenID != "" {
		for _, tb := range balances {
			if tb.TokenID == c.tokenID {
				return tb, true
			}
		}
	}

	var fallback *TokenBalance
	for i := range balances {
		if !strings.EqualFold(balances[i].Symbol, usdcSymbol) {
			continue
		}
		if c.blockchain == "" || strings.EqualFold(balances[i].Blockchain, c.blockchain) {
			return balances[i], true
		}
		if fallback == nil {
			fallback = &balances[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return TokenBalance{}, false
}

func (c *Client) resolveTokenID(ctx context.Context, walletID string) (string, error) {
	if c.tokenID != "" {
		return c.tokenID, nil
	}
	c.mu.Lock()
	cached := c.tokenIDs[walletID]
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	balances, err := c.GetBalances(ctx, walletID)
	if err != nil {
		return "", fmt.Errorf("wallet: detect token id: %w", err)
	}
	tb, ok := c.pickUSDC(balances)
	if !ok || tb.TokenID == "" {
		return "", ErrTokenNotFound
	}
	c.logger.Debug("detected USDC token id", zap.String("wallet_id", walletID), zap.String("token_id", tb.TokenID))

	c.mu.Lock()
	c.tokenIDs[walletID] = tb.TokenID
	c.mu.Unlock()
	return tb.TokenID, nil
}

type transferBody struct {
	IdempotencyKey         string   `json:"idempotencyKey"`
	EntitySecretCiphertext string   `json:"entitySecretCiphertext"`
	WalletID               string   `json:"walletId"`
	DestinationAddress     string   `json:"destinationAddress"`
	Amounts                []string `json:"amounts"`
	TokenID                string   `json:"tokenId"`
	FeeLevel               string   `json:"feeLevel"`
}

// Transfer sends a signed USDC transfer. Each call carries a fresh idempotency key
// and a freshly encrypted credential.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	if err := ValidateCredential(req.Credential); err != nil {
		return TransferResult{}, err
	}
	if !req.Amount.IsPositive() {
		return TransferResult{}, fmt.Errorf("wallet: transfer amount must be positive, got %s", req.Amount)
	}

	pub, err := c.PublicKey(ctx)
	if err != nil {
		return TransferResult{}, fmt.Errorf("wallet: fetch public key: %w", err)
	}
	ciphertext, err := encryptCredential(req.Credential, pub)
	if err != nil {
		return TransferResult{}, err
	}

	tokenID, err := c.resolveTokenID(ctx, req.WalletID)
	if err != nil {
		return TransferResult{}, err
	}

	body := transferBody{
		IdempotencyKey:         uuid.NewString(),
		EntitySecretCiphertext: ciphertext,
		WalletID:               req.WalletID,
		DestinationAddress:     req.Destination,
		Amounts:                []string{req.Amount.String()},
		TokenID:                tokenID,
		FeeLevel:               defaultFee,
	}

	var data struct {
		ID     string `json:"id"`
		State  string `json:"state"`
		TxHash string `json:"txHash"`
	}
	if err := c.do(ctx, http.MethodPost, pathTransfer, nil, body, &data); err != nil {
		return TransferResult{}, err
	}
	if data.ID == "" {
		return TransferResult{}, errors.New("wallet: transfer accepted without a transaction id")
	}

	return TransferResult{
		ID:     data.ID,
		State:  ParseTransferState(data.State),
		TxHash: data.TxHash,
	}, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	var data struct {
		Transaction map[string]any `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(pathTransaction, url.PathEscape(id)), nil, nil, &data); err != nil {
		return Transaction{}, err
	}
	if data.Transaction == nil {
		return Transaction{}, &APIError{StatusCode: http.StatusNotFound, Message: "transaction not found"}
	}
	tx := NormalizeTransaction(data.Transaction)
	if tx.ID == "" {
		tx.ID = id
	}
	return tx, nil
}

// ListTransactions returns the wallet's most recent transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context, walletID string, pageSize int) ([]Transaction, error) {
	if pageSize <= 0 || pageSize > 50 {
		pageSize = 50
	}
	q := url.Values{}
	q.Set("walletIds", walletID)
	q.Set("pageSize", fmt.Sprint(pageSize))

	var data struct {
		Transactions []map[string]any `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, pathTransactions, q, nil, &data); err != nil {
		return nil, err
	}

	out := make([]Transaction, 0, len(data.Transactions))
	for _, raw := range data.Transactions {
		out = append(out, NormalizeTransaction(raw))
	}
	return out, nil
}
