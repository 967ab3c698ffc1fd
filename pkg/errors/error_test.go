package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodePositionAlreadyOpen, "position already open at %.2f", 100.0)
	suite.Equal(ErrCodePositionAlreadyOpen, err.Code)
	suite.Equal("position already open at 100.00", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("timeout")
	err := Wrapf(ErrCodeMarketDataFetchFailed, cause, "klines for %s", "BTCEUR")
	suite.Equal(ErrCodeMarketDataFetchFailed, err.Code)
	suite.Equal("klines for BTCEUR", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	suite.Equal("[100] invalid parameter", New(ErrCodeInvalidParameter, "invalid parameter").Error())

	err := Wrap(ErrCodeOrderFailed, "market sell failed", errors.New("insufficient balance"))
	suite.Equal("[500] market sell failed: insufficient balance", err.Error())
	suite.Equal("insufficient balance", err.Unwrap().Error())
}

func (suite *ErrorTestSuite) TestGetCode() {
	suite.Equal(ErrCodeInvalidParameter, GetCode(New(ErrCodeInvalidParameter, "x")))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))

	// the outermost code wins
	err := Wrap(ErrCodeOrderFailed, "order failed", New(ErrCodeAuthenticationFailed, "bad key"))
	suite.Equal(ErrCodeOrderFailed, GetCode(err))

	// codes survive fmt wrapping
	suite.Equal(ErrCodeQueryFailed, GetCode(fmt.Errorf("outer: %w", New(ErrCodeQueryFailed, "q"))))
}

func (suite *ErrorTestSuite) TestHasCodeAndAs() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.True(HasCode(err, ErrCodeInvalidParameter))
	suite.False(HasCode(err, ErrCodeDataNotFound))

	var typed *Error
	suite.True(As(err, &typed))
	suite.Equal(ErrCodeInvalidParameter, typed.Code)

	cause := errors.New("underlying error")
	suite.True(Is(Wrap(ErrCodeDataNotFound, "data not found", cause), cause))
}

func (suite *ErrorTestSuite) TestIsFatal() {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{name: "nil", err: nil, fatal: false},
		{name: "plain error", err: errors.New("boom"), fatal: false},
		{name: "fetch failure", err: New(ErrCodeMarketDataFetchFailed, "klines"), fatal: false},
		{name: "order failure", err: New(ErrCodeOrderFailed, "rejected"), fatal: false},
		{name: "authentication", err: New(ErrCodeAuthenticationFailed, "invalid api key"), fatal: true},
		{name: "connectivity", err: New(ErrCodeConnectivityFailed, "server time"), fatal: true},
		{name: "configuration", err: New(ErrCodeInvalidConfiguration, "bad config"), fatal: true},
		{name: "wrapped fatal", err: fmt.Errorf("cycle: %w", New(ErrCodeAuthenticationFailed, "x")), fatal: true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.fatal, IsFatal(tt.err))
		})
	}
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeDataNotFound)
	suite.Equal(ErrorCode(300), ErrCodeIndicatorCalculation)
	suite.Equal(ErrorCode(500), ErrCodeOrderFailed)
	suite.Equal(ErrorCode(700), ErrCodeMarketDataFetchFailed)
	suite.Equal(ErrorCode(900), ErrCodeAuthenticationFailed)
	suite.Equal(ErrorCode(1000), ErrCodeNotificationFailed)
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataErrorf(22, 5, "BTCEUR", "need %d candles, got %d", 22, 5)
	suite.Equal(22, err.Required)
	suite.Equal(5, err.Actual)
	suite.Equal("BTCEUR", err.Symbol)
	suite.Equal("need 22 candles, got 5", err.Error())

	suite.True(IsInsufficientDataError(err))
	suite.True(IsInsufficientDataError(fmt.Errorf("wrapped: %w", err)))
	suite.False(IsInsufficientDataError(errors.New("standard error")))
	suite.False(IsInsufficientDataError(New(ErrCodeInvalidParameter, "invalid parameter")))
	suite.False(IsInsufficientDataError(nil))
	suite.False(IsFatal(err))
}
