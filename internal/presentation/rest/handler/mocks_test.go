package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"debit-worker/internal/domain/debit"
	"debit-worker/internal/domain/ledger"
)

// MockDebitClient モック口座振替クライアント
type MockDebitClient struct {
	mock.Mock
}

func (m *MockDebitClient) Do(ctx context.Context, req debit.Request) (*debit.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debit.Result), args.Error(1)
}

// MockLedgerStore モック台帳ストア
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) RecordDebitHistory(ctx context.Context, rec *ledger.HistoryRecord) bool {
	args := m.Called(ctx, rec)
	return args.Bool(0)
}

func (m *MockLedgerStore) MarkSettled(ctx context.Context, merchantCode, userCode string) bool {
	args := m.Called(ctx, merchantCode, userCode)
	return args.Bool(0)
}

func (m *MockLedgerStore) MarkFailed(ctx context.Context, merchantCode, userCode, errorCode string) bool {
	args := m.Called(ctx, merchantCode, userCode, errorCode)
	return args.Bool(0)
}
