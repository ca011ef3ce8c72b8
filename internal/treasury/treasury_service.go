package treasury

import (
	"context"
	"errors"
	"strings"

	"go-bossboard/internal/company"
	"go-bossboard/internal/shared/apperror"
	"go-bossboard/internal/shared/cache"
	treasuryerrors "go-bossboard/internal/treasury/errors"
	"go-bossboard/internal/wallet"
	"go-bossboard/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultPageSize = 50

// Gateway is the read side of the wallet provider.
type Gateway interface {
	GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
	GetBalances(ctx context.Context, walletID string) ([]wallet.TokenBalance, error)
	ListTransactions(ctx context.Context, walletID string, pageSize int) ([]wallet.Transaction, error)
	GetTransaction(ctx context.Context, id string) (wallet.Transaction, error)
	GetWallet(ctx context.Context, walletID string) (wallet.WalletInfo, error)
}

type CompanyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error)
}

type WorkerReader interface {
	FindAllByCompany(ctx context.Context, companyID, departmentID string) ([]worker.Worker, error)
}

type Service interface {
	Balance(ctx context.Context, companyID string) (*BalanceResponse, error)
	Balances(ctx context.Context, companyID string) (*BalancesResponse, error)
	Transactions(ctx context.Context, companyID string, pageSize int) ([]TransactionResponse, error)
	Transaction(ctx context.Context, companyID, id string) (*TransactionResponse, error)
	Wallet(ctx context.Context, companyID string) (*WalletResponse, error)
}

type service struct {
	gateway   Gateway
	companies CompanyReader
	workers   WorkerReader
	balances  *cache.Store[[]wallet.TokenBalance]
	logger    *zap.Logger
}

// NewService builds the treasury reader. balances may be nil to disable caching.
func NewService(gateway Gateway, companies CompanyReader, workers WorkerReader, balances *cache.Store[[]wallet.TokenBalance], logger ...*zap.Logger) Service {
	l := zap.L().Named("treasury.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("treasury.service")
	}
	return &service{gateway: gateway, companies: companies, workers: workers, balances: balances, logger: l}
}

func (s *service) Balance(ctx context.Context, companyID string) (*BalanceResponse, error) {
	walletID, err := s.walletID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	amount, err := s.gateway.GetBalance(ctx, walletID)
	if err != nil {
		return nil, s.gatewayError("get balance", companyID, err)
	}
	return &BalanceResponse{WalletID: walletID, Symbol: "USDC", Amount: amount.String()}, nil
}

func (s *service) Balances(ctx context.Context, companyID string) (*BalancesResponse, error) {
	walletID, err := s.walletID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	load := func(ctx context.Context) ([]wallet.TokenBalance, error) {
		return s.gateway.GetBalances(ctx, walletID)
	}
	var balances []wallet.TokenBalance
	if s.balances != nil {
		balances, err = s.balances.GetOrLoad(ctx, walletID, load)
	} else {
		balances, err = load(ctx)
	}
	if err != nil {
		return nil, s.gatewayError("get balances", companyID, err)
	}
	return &BalancesResponse{WalletID: walletID, Balances: balances}, nil
}

func (s *service) Transactions(ctx context.Context, companyID string, pageSize int) ([]TransactionResponse, error) {
	walletID, err := s.walletID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	txs, err := s.gateway.ListTransactions(ctx, walletID, pageSize)
	if err != nil {
		return nil, s.gatewayError("list transactions", companyID, err)
	}

	names := s.workerNames(ctx, companyID)
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, classify(tx, names))
	}
	return out, nil
}

// Transaction returns one provider transaction. All companies share the
// provider account, so a transaction of another wallet is reported as missing.
func (s *service) Transaction(ctx context.Context, companyID, id string) (*TransactionResponse, error) {
	walletID, err := s.walletID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	tx, err := s.gateway.GetTransaction(ctx, id)
	if wallet.IsNotFound(err) {
		return nil, treasuryerrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, s.gatewayError("get transaction", companyID, err)
	}
	if !strings.EqualFold(tx.WalletID, walletID) {
		s.logger.Warn("transaction of another wallet requested",
			zap.String("company_id", companyID),
			zap.String("transaction_id", id),
		)
		return nil, treasuryerrors.ErrTransactionNotFound
	}

	resp := classify(tx, s.workerNames(ctx, companyID))
	return &resp, nil
}

// Wallet describes the company wallet. The stored wallet set id fills in
// when the provider omits it.
func (s *service) Wallet(ctx context.Context, companyID string) (*WalletResponse, error) {
	comp, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}

	info, err := s.gateway.GetWallet(ctx, *comp.WalletID)
	if err != nil {
		return nil, s.gatewayError("get wallet", companyID, err)
	}
	if info.WalletSetID == "" && comp.WalletSetID != nil {
		info.WalletSetID = *comp.WalletSetID
	}
	return &WalletResponse{
		WalletID:    *comp.WalletID,
		Address:     info.Address,
		State:       info.State,
		WalletSetID: info.WalletSetID,
		Blockchain:  info.Blockchain,
	}, nil
}

// company loads the caller's company and requires a configured wallet.
func (s *service) company(ctx context.Context, companyID string) (*company.Company, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, treasuryerrors.ErrInvalidCompanyID
	}

	comp, err := s.companies.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, treasuryerrors.ErrNoWallet
	}
	if err != nil {
		return nil, err
	}
	if comp.WalletID == nil || *comp.WalletID == "" {
		return nil, treasuryerrors.ErrNoWallet
	}
	return comp, nil
}

func (s *service) walletID(ctx context.Context, companyID string) (string, error) {
	comp, err := s.company(ctx, companyID)
	if err != nil {
		return "", err
	}
	return *comp.WalletID, nil
}

// workerNames maps lower-cased worker wallet addresses to display names.
// A lookup failure only loses the payroll/withdrawal distinction.
func (s *service) workerNames(ctx context.Context, companyID string) map[string]string {
	workers, err := s.workers.FindAllByCompany(ctx, companyID, "")
	if err != nil {
		s.logger.Warn("load worker addresses failed", zap.String("company_id", companyID), zap.Error(err))
		return nil
	}
	names := make(map[string]string, len(workers))
	for _, w := range workers {
		names[strings.ToLower(w.WalletAddress)] = w.FullName()
	}
	return names
}

// classify splits outbound movements into payroll (to a known worker) and
// withdrawal (anywhere else).
func classify(tx wallet.Transaction, names map[string]string) TransactionResponse {
	resp := TransactionResponse{Transaction: tx}
	if tx.Kind != wallet.KindPayroll && tx.Kind != wallet.KindWithdrawal {
		return resp
	}
	if names == nil {
		return resp
	}

	if name, ok := names[strings.ToLower(tx.DestinationAddress)]; ok {
		resp.Kind = wallet.KindPayroll
		resp.WorkerName = name
		return resp
	}
	if tx.DestinationAddress != "" {
		resp.Kind = wallet.KindWithdrawal
	}
	return resp
}

func (s *service) gatewayError(op, companyID string, err error) error {
	s.logger.Error("wallet provider call failed",
		zap.String("op", op),
		zap.String("company_id", companyID),
		zap.Error(err),
	)
	e := treasuryerrors.ErrGatewayUnavailable
	return apperror.Wrap(err, e.Code, e.Message, e.HTTPStatus)
}
