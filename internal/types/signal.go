package types

type SignalAction string

const (
	// SignalActionBuy tells the control loop to open a long position
	SignalActionBuy SignalAction = "BUY"
	// SignalActionSell tells the control loop to close the open position
	SignalActionSell SignalAction = "SELL"
	// SignalActionNone tells the control loop to do nothing this cycle
	SignalActionNone SignalAction = "NONE"
)

// SignalRule names the detector rule that produced an intent.
type SignalRule string

const (
	SignalRuleCrossoverBuy     SignalRule = "crossover_buy"
	SignalRuleEarlyExit        SignalRule = "early_exit"
	SignalRuleCrossoverSell    SignalRule = "crossover_sell"
	SignalRuleContinuationBuy  SignalRule = "continuation_buy"
	SignalRuleContinuationSell SignalRule = "continuation_sell"
	SignalRuleInsufficientData SignalRule = "insufficient_data"
	SignalRuleNone             SignalRule = "none"
)

// Intent is the output of the signal detector for one cycle.
type Intent struct {
	// Action is what the control loop should attempt
	Action SignalAction
	// Rule is the rule that matched
	Rule SignalRule
	// Reason is a human readable explanation used in logs and notifications
	Reason string
	// Point is the latest indicator sample the decision was made on
	Point IndicatorPoint
}

// NoIntent returns an intent with no action for the given rule.
func NoIntent(rule SignalRule, reason string) Intent {
	return Intent{
		Action: SignalActionNone,
		Rule:   rule,
		Reason: reason,
		Point:  IndicatorPoint{EMAFast: 0, EMASlow: 0, RSI: 0},
	}
}
