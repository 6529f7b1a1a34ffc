package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Pacs008(ctx context.Context, parties payload.Parties) (*transaction.Pacs008Result, error) {
	ret := m.Called(ctx, parties)
	res, _ := ret.Get(0).(*transaction.Pacs008Result)
	return res, ret.Error(1)
}

func (m *Service) QuickStatus(ctx context.Context, status string, parties payload.Parties) (*transaction.QuickStatusResult, error) {
	ret := m.Called(ctx, status, parties)
	res, _ := ret.Get(0).(*transaction.QuickStatusResult)
	return res, ret.Error(1)
}

func (m *Service) FullTransaction(ctx context.Context, parties payload.Parties) (*transaction.FullTransactionResult, error) {
	ret := m.Called(ctx, parties)
	res, _ := ret.Get(0).(*transaction.FullTransactionResult)
	return res, ret.Error(1)
}

func (m *Service) Pain001(ctx context.Context, parties payload.Parties) (*transaction.PainResult, error) {
	ret := m.Called(ctx, parties)
	res, _ := ret.Get(0).(*transaction.PainResult)
	return res, ret.Error(1)
}

func (m *Service) Pain013(ctx context.Context, parties payload.Parties) (*transaction.PainResult, error) {
	ret := m.Called(ctx, parties)
	res, _ := ret.Get(0).(*transaction.PainResult)
	return res, ret.Error(1)
}
