package mocks

//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-features/internal/indicator Indicator
//go:generate mockgen -destination=./mock_indicator_registry.go -package=mocks github.com/rxtech-lab/argo-features/internal/indicator IndicatorRegistry
//go:generate mockgen -destination=./mock_http_doer.go -package=mocks github.com/rxtech-lab/argo-features/pkg/marketdata/provider HTTPDoer
//go:generate mockgen -destination=./mock_sleeper.go -package=mocks github.com/rxtech-lab/argo-features/pkg/marketdata/provider Sleeper
//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-features/pkg/marketdata/provider Provider
