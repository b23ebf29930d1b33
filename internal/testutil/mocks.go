package testutil

import (
	"context"

	"tophits/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of services.CatalogService for testing
type MockCatalogService struct {
	mock.Mock
	name string
}

func NewMockCatalogService(name string) *MockCatalogService {
	return &MockCatalogService{name: name}
}

func (m *MockCatalogService) Name() string {
	return m.name
}

func (m *MockCatalogService) Search(ctx context.Context, query string) ([]models.CandidateTrack, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CandidateTrack), args.Error(1)
}

func (m *MockCatalogService) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMatchRepository is a mock implementation of MatchRepository for testing
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) SaveResolution(ctx context.Context, record *models.MatchRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMatchRepository) FindByYear(ctx context.Context, year int) ([]*models.MatchRecord, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MatchRecord), args.Error(1)
}

func (m *MockMatchRepository) FindByPosition(ctx context.Context, year, position int) (*models.MatchRecord, error) {
	args := m.Called(ctx, year, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchRecord), args.Error(1)
}

// Helper functions for setting up mock expectations

// ExpectSearch answers a single query
func ExpectSearch(m *MockCatalogService, query string, tracks []models.CandidateTrack, err error) *mock.Call {
	return m.On("Search", mock.Anything, query).Return(tracks, err)
}

// ExpectAnySearch answers every query with the same response
func ExpectAnySearch(m *MockCatalogService, tracks []models.CandidateTrack, err error) *mock.Call {
	return m.On("Search", mock.Anything, mock.AnythingOfType("string")).Return(tracks, err)
}

// ExpectSaveResolution accepts any stored record
func ExpectSaveResolution(m *MockMatchRepository, err error) *mock.Call {
	return m.On("SaveResolution", mock.Anything, mock.AnythingOfType("*models.MatchRecord")).Return(err)
}
