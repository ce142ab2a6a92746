package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/vttbridge/relay/internal/catalog/domain"
)

// MockSourceUseCase is a mock implementation of usecase.SourceUseCase.
type MockSourceUseCase struct {
	mock.Mock
}

func (m *MockSourceUseCase) Sources(ctx context.Context) []domain.Source {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Source)
}

func (m *MockSourceUseCase) SourceMap(ctx context.Context) domain.SourceMap {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(domain.SourceMap)
}

func (m *MockSourceUseCase) ListSourceBooks(ctx context.Context) []domain.SourceBook {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.SourceBook)
}

// MockItemUseCase is a mock implementation of usecase.ItemUseCase.
type MockItemUseCase struct {
	mock.Mock
}

func (m *MockItemUseCase) FetchAllItems(ctx context.Context, credential string, sourceFilterIDs []int, bustCache bool) (*domain.ItemResult, error) {
	args := m.Called(ctx, credential, sourceFilterIDs, bustCache)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemResult), args.Error(1)
}

// MockSpellUseCase is a mock implementation of usecase.SpellUseCase.
type MockSpellUseCase struct {
	mock.Mock
}

func (m *MockSpellUseCase) FetchAllSpells(ctx context.Context, credential string, sourceFilterIDs []int, bustCache bool) (*domain.SpellResult, error) {
	args := m.Called(ctx, credential, sourceFilterIDs, bustCache)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpellResult), args.Error(1)
}

// MockCharacterUseCase is a mock implementation of usecase.CharacterUseCase.
type MockCharacterUseCase struct {
	mock.Mock
}

func (m *MockCharacterUseCase) Get(ctx context.Context, credential, path string) (json.RawMessage, error) {
	args := m.Called(ctx, credential, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
