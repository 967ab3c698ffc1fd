package mocks

//go:generate mockgen -destination=./mock_market_data_feed.go -package=mocks github.com/rxtech-lab/crossover-trader/internal/trading/provider MarketDataFeed
//go:generate mockgen -destination=./mock_order_executor.go -package=mocks github.com/rxtech-lab/crossover-trader/internal/trading/provider OrderExecutor
//go:generate mockgen -destination=./mock_account_query.go -package=mocks github.com/rxtech-lab/crossover-trader/internal/trading/provider AccountQuery
//go:generate mockgen -destination=./mock_notifier.go -package=mocks github.com/rxtech-lab/crossover-trader/internal/notify Notifier
//go:generate mockgen -destination=./mock_sink.go -package=mocks github.com/rxtech-lab/crossover-trader/internal/notify Sink
