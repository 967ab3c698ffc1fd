package writers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type WritersTestSuite struct {
	suite.Suite
	tempDir string
}

func (s *WritersTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
}

func TestWritersTestSuite(t *testing.T) {
	suite.Run(t, new(WritersTestSuite))
}

func tradeRecord(seq int, entry, exit float64, delta optional.Option[float64]) types.TradeRecord {
	opened := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Hour)

	return types.TradeRecord{
		SequenceNo:   seq,
		Symbol:       "BTCEUR",
		EntryPrice:   entry,
		ExitPrice:    exit,
		Quantity:     0.5,
		Fee:          0.08,
		ExitReason:   types.ExitReasonSignal,
		OpenedAt:     opened,
		ClosedAt:     opened.Add(30 * time.Minute),
		PricePnL:     decimal.NewFromFloat(exit - entry).Mul(decimal.NewFromFloat(0.5)).Sub(decimal.NewFromFloat(0.08)),
		BalanceDelta: delta,
	}
}

func (s *WritersTestSuite) TestTradesWriter_Initialize() {
	outputPath := filepath.Join(s.tempDir, "nested", "trades.parquet")
	w := NewTradesWriter(outputPath)

	s.Require().NoError(w.Initialize())
	defer w.Close()

	s.DirExists(filepath.Dir(outputPath))
	s.Equal(outputPath, w.GetOutputPath())

	count, err := w.GetTradeCount()
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *WritersTestSuite) TestTradesWriter_WriteAndTotals() {
	outputPath := filepath.Join(s.tempDir, "trades.parquet")
	w := NewTradesWriter(outputPath)
	s.Require().NoError(w.Initialize())
	defer w.Close()

	s.Require().NoError(w.Write(tradeRecord(1, 100, 110, optional.Some(4.9))))
	s.Require().NoError(w.Write(tradeRecord(2, 110, 105, optional.None[float64]())))

	s.FileExists(outputPath)

	count, err := w.GetTradeCount()
	s.Require().NoError(err)
	s.Equal(2, count)

	pnl, err := w.GetTotalPnL()
	s.Require().NoError(err)
	s.InDelta(2.34, pnl, 1e-9)

	delta, err := w.GetTotalBalanceDelta()
	s.Require().NoError(err)
	s.InDelta(4.9, delta, 1e-9)
}

func (s *WritersTestSuite) TestTradesWriter_TotalsWithoutTrades() {
	w := NewTradesWriter(filepath.Join(s.tempDir, "trades.parquet"))
	s.Require().NoError(w.Initialize())
	defer w.Close()

	pnl, err := w.GetTotalPnL()
	s.Require().NoError(err)
	s.Equal(0.0, pnl)

	delta, err := w.GetTotalBalanceDelta()
	s.Require().NoError(err)
	s.Equal(0.0, delta)
}

func (s *WritersTestSuite) TestTradesWriter_Persistence() {
	outputPath := filepath.Join(s.tempDir, "trades.parquet")

	w1 := NewTradesWriter(outputPath)
	s.Require().NoError(w1.Initialize())
	s.Require().NoError(w1.Write(tradeRecord(1, 100, 110, optional.Some(4.9))))
	s.Require().NoError(w1.Close())

	w2 := NewTradesWriter(outputPath)
	s.Require().NoError(w2.Initialize())
	defer w2.Close()

	count, err := w2.GetTradeCount()
	s.Require().NoError(err)
	s.Equal(1, count)

	s.Require().NoError(w2.Write(tradeRecord(2, 110, 120, optional.None[float64]())))

	count, err = w2.GetTradeCount()
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *WritersTestSuite) TestTradesWriter_NotInitialized() {
	w := NewTradesWriter(filepath.Join(s.tempDir, "trades.parquet"))

	s.Error(w.Write(tradeRecord(1, 100, 110, optional.None[float64]())))
	s.Error(w.Flush())

	_, err := w.GetTradeCount()
	s.Error(err)

	_, err = w.GetTotalPnL()
	s.Error(err)

	s.NoError(w.Close())
}

func (s *WritersTestSuite) TestTradesWriter_Flush() {
	outputPath := filepath.Join(s.tempDir, "trades.parquet")
	w := NewTradesWriter(outputPath)
	s.Require().NoError(w.Initialize())
	defer w.Close()

	s.Require().NoError(w.Flush())
	s.FileExists(outputPath)
}
