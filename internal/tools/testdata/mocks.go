// Package testdata provides mock implementations and fixtures for testing the
// tool packages.
package testdata

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/server"
)

// Compile-time interface compliance checks.
var (
	_ flights.Provider = (*MockProvider)(nil)
	_ flights.Provider = (*RecordingProvider)(nil)
	_ server.Logger    = (*MockLogger)(nil)
)

// Airports is a small directory fixture keyed by IATA code.
var Airports = map[string]string{
	"LAX": "Los Angeles International Airport, Los Angeles, US",
	"JFK": "John F Kennedy International Airport, New York, US",
	"LHR": "London Heathrow Airport, London, GB",
	"CDG": "Charles de Gaulle International Airport, Paris, FR",
	"HND": "Tokyo Haneda International Airport, Tokyo, JP",
}

// NewDirectory returns a loaded directory holding Airports.
func NewDirectory() *airports.Directory {
	return airports.NewDirectoryFromRecords(Airports)
}

// MockProvider implements flights.Provider with testify expectations.
type MockProvider struct {
	mock.Mock
}

// Name implements flights.Provider.
func (m *MockProvider) Name() string {
	return "mock"
}

// Search implements flights.Provider.
func (m *MockProvider) Search(ctx context.Context, req flights.ProviderRequest) (*flights.SearchResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*flights.SearchResult)
	return result, args.Error(1)
}

// RecordingProvider returns a fixed result and records every request.
type RecordingProvider struct {
	Result *flights.SearchResult
	Err    error

	mu       sync.Mutex
	requests []flights.ProviderRequest
}

// Name implements flights.Provider.
func (p *RecordingProvider) Name() string {
	return "recording"
}

// Search implements flights.Provider.
func (p *RecordingProvider) Search(_ context.Context, req flights.ProviderRequest) (*flights.SearchResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	return p.Result, p.Err
}

// Requests returns a copy of the recorded requests.
func (p *RecordingProvider) Requests() []flights.ProviderRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]flights.ProviderRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// MockLogger implements server.Logger and discards everything.
type MockLogger struct{}

// Info implements server.Logger.
func (m *MockLogger) Info(_ string, _ ...any) {}

// Debug implements server.Logger.
func (m *MockLogger) Debug(_ string, _ ...any) {}

// Warn implements server.Logger.
func (m *MockLogger) Warn(_ string, _ ...any) {}

// Error implements server.Logger.
func (m *MockLogger) Error(_ string, _ ...any) {}

// With implements server.Logger.
func (m *MockLogger) With(_ ...any) server.Logger {
	return m
}
