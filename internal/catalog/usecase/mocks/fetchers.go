// Package mocks provides testify mocks for the catalog usecase interfaces.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/vttbridge/relay/internal/catalog/domain"
)

// MockSourceFetcher is a mock implementation of usecase.SourceFetcher.
type MockSourceFetcher struct {
	mock.Mock
}

func (m *MockSourceFetcher) FetchSources(ctx context.Context) ([]domain.Source, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Source), args.Error(1)
}

// MockItemFetcher is a mock implementation of usecase.ItemFetcher.
type MockItemFetcher struct {
	mock.Mock
}

func (m *MockItemFetcher) FetchItems(ctx context.Context, bearerToken string) ([]domain.Item, error) {
	args := m.Called(ctx, bearerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

// MockSpellFetcher is a mock implementation of usecase.SpellFetcher.
type MockSpellFetcher struct {
	mock.Mock
}

func (m *MockSpellFetcher) FetchClassSpells(ctx context.Context, bearerToken string, classID, classLevel int) ([]domain.Spell, error) {
	args := m.Called(ctx, bearerToken, classID, classLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Spell), args.Error(1)
}

// MockCharacterFetcher is a mock implementation of usecase.CharacterFetcher.
type MockCharacterFetcher struct {
	mock.Mock
}

func (m *MockCharacterFetcher) GetCharacter(ctx context.Context, bearerToken, path string) (json.RawMessage, error) {
	args := m.Called(ctx, bearerToken, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockBearerTokenProvider is a mock implementation of usecase.BearerTokenProvider.
type MockBearerTokenProvider struct {
	mock.Mock
}

func (m *MockBearerTokenProvider) GetBearerToken(ctx context.Context, credential string) (string, error) {
	args := m.Called(ctx, credential)
	return args.String(0), args.Error(1)
}
