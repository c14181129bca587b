// Package mockserver provides a fake CoinGecko and Binance REST server for tests.
// Candles are generated deterministically with mocks.DataGenerator.
package mockserver

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/mocks"
)

// binanceLimit is the page size of the klines endpoint.
const binanceLimit = 500

// Config configures the mock server.
type Config struct {
	// Candles is the number of candles served per request.
	Candles int
	// Interval is the spacing of generated candles.
	Interval time.Duration
	// Seed makes generated prices reproducible.
	Seed int64
}

// MockMarketServer serves the subset of the CoinGecko and Binance APIs the
// market data providers use.
type MockMarketServer struct {
	mu sync.Mutex

	httpServer *http.Server
	listener   net.Listener
	config     Config

	// scripted responses, consumed one per request before normal handling
	script []scriptedResponse

	requests []*url.URL
}

type scriptedResponse struct {
	status int
	body   string
}

// NewMockMarketServer creates a server. Call Start before use.
func NewMockMarketServer(config Config) *MockMarketServer {
	if config.Candles <= 0 {
		config.Candles = 300
	}

	if config.Interval <= 0 {
		config.Interval = 5 * time.Minute
	}

	if config.Seed == 0 {
		config.Seed = 42
	}

	return &MockMarketServer{config: config}
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockMarketServer) Start(address string) error {
	if address == "" {
		address = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockMarketServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Close()
}

// URL returns the base URL of the running server.
func (s *MockMarketServer) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Router returns the request router, for use with httptest.
func (s *MockMarketServer) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/coins/{id}/ohlc", s.handleOHLC).Methods(http.MethodGet)
	router.HandleFunc("/coins/{id}/market_chart", s.handleMarketChart).Methods(http.MethodGet)
	router.HandleFunc("/api/v3/klines", s.handleKlines).Methods(http.MethodGet)

	router.Use(s.recordAndScript)

	return router
}

// RateLimit makes the next n requests answer 429.
func (s *MockMarketServer) RateLimit(n int) {
	for i := 0; i < n; i++ {
		s.FailNext(http.StatusTooManyRequests, `{"status":{"error_code":429,"error_message":"You've exceeded the Rate Limit."}}`)
	}
}

// FailNext makes the next unscripted request answer status with body.
func (s *MockMarketServer) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.script = append(s.script, scriptedResponse{status: status, body: body})
}

// Requests returns the URLs of every request received so far.
func (s *MockMarketServer) Requests() []*url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*url.URL(nil), s.requests...)
}

func (s *MockMarketServer) recordAndScript(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL)

		var scripted *scriptedResponse
		if len(s.script) > 0 {
			scripted = &s.script[0]
			s.script = s.script[1:]
		}
		s.mu.Unlock()

		if scripted != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(scripted.status)
			_, _ = w.Write([]byte(scripted.body))

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *MockMarketServer) candles(symbol string, start time.Time, count int) []types.Candle {
	config := mocks.DefaultConfig()
	config.Symbol = symbol
	config.StartTime = start
	config.Interval = s.config.Interval
	config.Count = count

	return mocks.NewDataGenerator(s.config.Seed).Generate(config)
}

func (s *MockMarketServer) coinGeckoStart() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

// handleOHLC handles GET /coins/{id}/ohlc
func (s *MockMarketServer) handleOHLC(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("vs_currency") == "" || r.URL.Query().Get("days") == "" {
		writeError(w, http.StatusBadRequest, "missing vs_currency or days")

		return
	}

	id := mux.Vars(r)["id"]
	rows := make([][]float64, 0, s.config.Candles)

	for _, c := range s.candles(id, s.coinGeckoStart(), s.config.Candles) {
		rows = append(rows, []float64{float64(c.Time.UnixMilli()), c.Open, c.High, c.Low, c.Close})
	}

	writeJSON(w, rows)
}

// handleMarketChart handles GET /coins/{id}/market_chart
func (s *MockMarketServer) handleMarketChart(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("vs_currency") == "" || r.URL.Query().Get("days") == "" {
		writeError(w, http.StatusBadRequest, "missing vs_currency or days")

		return
	}

	id := mux.Vars(r)["id"]
	candles := s.candles(id, s.coinGeckoStart(), s.config.Candles)

	prices := make([][]float64, len(candles))
	volumes := make([][]float64, len(candles))

	for i, c := range candles {
		ts := float64(c.Time.UnixMilli())
		prices[i] = []float64{ts, c.Close}
		volumes[i] = []float64{ts, c.Volume}
	}

	writeJSON(w, map[string][][]float64{
		"prices":        prices,
		"market_caps":   prices,
		"total_volumes": volumes,
	})
}

// handleKlines handles GET /api/v3/klines
func (s *MockMarketServer) handleKlines(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	interval := r.URL.Query().Get("interval")

	if symbol == "" || interval == "" {
		http.Error(w, "Missing required parameters", http.StatusBadRequest)

		return
	}

	intervalDuration := parseInterval(interval)
	if intervalDuration == 0 {
		http.Error(w, "Invalid interval", http.StatusBadRequest)

		return
	}

	startMillis, _ := strconv.ParseInt(r.URL.Query().Get("startTime"), 10, 64)
	endMillis, _ := strconv.ParseInt(r.URL.Query().Get("endTime"), 10, 64)
	startTime := time.UnixMilli(startMillis).UTC()
	endTime := time.UnixMilli(endMillis).UTC()

	numPoints := int(endTime.Sub(startTime) / intervalDuration)
	numPoints = min(max(numPoints, 0), binanceLimit)

	// Binance kline format: [openTime, open, high, low, close, volume, closeTime, ...]
	klines := make([][]any, 0, numPoints)
	for _, c := range s.candles(symbol, startTime, numPoints) {
		klines = append(klines, []any{
			c.Time.UnixMilli(),
			strconv.FormatFloat(c.Open, 'f', 8, 64),
			strconv.FormatFloat(c.High, 'f', 8, 64),
			strconv.FormatFloat(c.Low, 'f', 8, 64),
			strconv.FormatFloat(c.Close, 'f', 8, 64),
			strconv.FormatFloat(c.Volume, 'f', 8, 64),
			c.Time.Add(intervalDuration).UnixMilli() - 1,
			"0",
			0,
			"0",
			"0",
			"0",
		})
	}

	writeJSON(w, klines)
}

func parseInterval(interval string) time.Duration {
	switch interval {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	case "1d":
		return 24 * time.Hour
	case "1w":
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
