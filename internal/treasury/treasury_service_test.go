package treasury_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go-bossboard/internal/company"
	"go-bossboard/internal/shared/cache"
	"go-bossboard/internal/treasury"
	treasuryerrors "go-bossboard/internal/treasury/errors"
	"go-bossboard/internal/wallet"
	"go-bossboard/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	aliceAddr     = "0x1111111111111111111111111111111111111111"
	otherAddr     = "0x2222222222222222222222222222222222222222"
	companyWallet = "8b2f4b6a-3f0e-4c55-9f58-5b9a8f0d2c11"
	foreignWallet = "5c0e7d1a-9b2f-4e3a-8c6d-1f2e3d4c5b6a"
)

type fakeGateway struct {
	balanceCalls atomic.Int32
	balances     []wallet.TokenBalance
	txs          []wallet.Transaction
	info         wallet.WalletInfo
	err          error
}

func (g *fakeGateway) GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	return decimal.RequireFromString("42.5"), g.err
}

func (g *fakeGateway) GetBalances(ctx context.Context, walletID string) ([]wallet.TokenBalance, error) {
	g.balanceCalls.Add(1)
	return g.balances, g.err
}

func (g *fakeGateway) ListTransactions(ctx context.Context, walletID string, pageSize int) ([]wallet.Transaction, error) {
	return g.txs, g.err
}

func (g *fakeGateway) GetTransaction(ctx context.Context, id string) (wallet.Transaction, error) {
	if g.err != nil {
		return wallet.Transaction{}, g.err
	}
	for _, tx := range g.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return wallet.Transaction{}, &wallet.APIError{StatusCode: http.StatusNotFound}
}

func (g *fakeGateway) GetWallet(ctx context.Context, walletID string) (wallet.WalletInfo, error) {
	info := g.info
	info.ID = walletID
	return info, g.err
}

type fakeCompanies struct{ byID map[uuid.UUID]company.Company }

func (f *fakeCompanies) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

type fakeWorkers struct {
	workers []worker.Worker
	err     error
}

func (f *fakeWorkers) FindAllByCompany(ctx context.Context, companyID, departmentID string) ([]worker.Worker, error) {
	return f.workers, f.err
}

func setup(gateway *fakeGateway, store *cache.Store[[]wallet.TokenBalance]) (treasury.Service, company.Company) {
	walletID, setID := companyWallet, "set-stored"
	c := company.Company{ID: uuid.New(), WalletID: &walletID, WalletSetID: &setID}
	svc := treasury.NewService(
		gateway,
		&fakeCompanies{byID: map[uuid.UUID]company.Company{c.ID: c}},
		&fakeWorkers{workers: []worker.Worker{{Name: "Alice", Surname: "Doe", WalletAddress: aliceAddr}}},
		store,
	)
	return svc, c
}

func TestService_Balance(t *testing.T) {
	svc, c := setup(&fakeGateway{}, nil)

	resp, err := svc.Balance(context.Background(), c.ID.String())

	require.NoError(t, err)
	assert.Equal(t, "42.5", resp.Amount)
	assert.Equal(t, "USDC", resp.Symbol)
	assert.Equal(t, *c.WalletID, resp.WalletID)
}

func TestService_WalletPreconditions(t *testing.T) {
	svc, _ := setup(&fakeGateway{}, nil)

	_, err := svc.Balance(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, treasuryerrors.ErrInvalidCompanyID)

	_, err = svc.Balance(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, treasuryerrors.ErrNoWallet)
}

func TestService_GatewayFailure(t *testing.T) {
	svc, c := setup(&fakeGateway{err: errors.New("connection reset")}, nil)

	_, err := svc.Balance(context.Background(), c.ID.String())
	assert.ErrorIs(t, err, treasuryerrors.ErrGatewayUnavailable)
}

func TestService_BalancesAreCached(t *testing.T) {
	gateway := &fakeGateway{balances: []wallet.TokenBalance{{Symbol: "USDC", Amount: decimal.NewFromInt(5)}}}
	svc, c := setup(gateway, cache.New[[]wallet.TokenBalance](10, time.Minute))

	for i := 0; i < 3; i++ {
		resp, err := svc.Balances(context.Background(), c.ID.String())
		require.NoError(t, err)
		require.Len(t, resp.Balances, 1)
	}
	assert.Equal(t, int32(1), gateway.balanceCalls.Load())
}

func TestService_TransactionsClassified(t *testing.T) {
	gateway := &fakeGateway{txs: []wallet.Transaction{
		{ID: "t1", Kind: wallet.KindPayroll, DestinationAddress: "0x1111111111111111111111111111111111111111"},
		{ID: "t2", Kind: wallet.KindPayroll, DestinationAddress: otherAddr},
		{ID: "t3", Kind: wallet.KindDeposit, SourceAddress: otherAddr},
		{ID: "t4", Kind: wallet.KindWithdrawal, DestinationAddress: aliceAddr},
	}}
	svc, c := setup(gateway, nil)

	resp, err := svc.Transactions(context.Background(), c.ID.String(), 0)

	require.NoError(t, err)
	require.Len(t, resp, 4)
	assert.Equal(t, wallet.KindPayroll, resp[0].Kind)
	assert.Equal(t, "Alice Doe", resp[0].WorkerName)
	assert.Equal(t, wallet.KindWithdrawal, resp[1].Kind)
	assert.Equal(t, wallet.KindDeposit, resp[2].Kind)
	assert.Equal(t, wallet.KindPayroll, resp[3].Kind)
}

func TestService_Transaction(t *testing.T) {
	gateway := &fakeGateway{txs: []wallet.Transaction{
		{ID: "t1", WalletID: companyWallet, Kind: wallet.KindDeposit},
		{ID: "t2", WalletID: foreignWallet, Kind: wallet.KindPayroll, DestinationAddress: otherAddr},
		{ID: "t3", Kind: wallet.KindDeposit},
	}}
	svc, c := setup(gateway, nil)

	resp, err := svc.Transaction(context.Background(), c.ID.String(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.ID)

	for _, id := range []string{"missing", "t2", "t3"} {
		_, err = svc.Transaction(context.Background(), c.ID.String(), id)
		assert.ErrorIs(t, err, treasuryerrors.ErrTransactionNotFound, id)
	}
}

func TestService_Wallet(t *testing.T) {
	t.Run("provider values", func(t *testing.T) {
		gateway := &fakeGateway{info: wallet.WalletInfo{Address: aliceAddr, State: "LIVE", WalletSetID: "set-remote"}}
		svc, c := setup(gateway, nil)

		resp, err := svc.Wallet(context.Background(), c.ID.String())
		require.NoError(t, err)
		assert.Equal(t, companyWallet, resp.WalletID)
		assert.Equal(t, aliceAddr, resp.Address)
		assert.Equal(t, "LIVE", resp.State)
		assert.Equal(t, "set-remote", resp.WalletSetID)
	})

	t.Run("stored wallet set fills in", func(t *testing.T) {
		svc, c := setup(&fakeGateway{info: wallet.WalletInfo{State: "LIVE"}}, nil)

		resp, err := svc.Wallet(context.Background(), c.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "set-stored", resp.WalletSetID)
	})

	t.Run("provider down", func(t *testing.T) {
		svc, c := setup(&fakeGateway{err: errors.New("timeout")}, nil)

		_, err := svc.Wallet(context.Background(), c.ID.String())
		assert.ErrorIs(t, err, treasuryerrors.ErrGatewayUnavailable)
	})
}

func TestHandler_GetTransaction_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, c := setup(&fakeGateway{}, nil)
	h := treasury.NewHandler(svc)

	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		ctx.Set("company_id", c.ID.String())
		ctx.Next()
	})
	r.GET("/treasury/transactions/:id", h.GetTransaction)
	r.GET("/treasury/balance", h.GetBalance)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/treasury/transactions/nope", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/treasury/balance", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":"42.5"`)
}
