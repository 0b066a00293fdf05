package calculation

import (
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// IRRSolver finds the internal rate of return by bisection over [Low, High]
type IRRSolver struct {
	Low           decimal.Decimal
	High          decimal.Decimal
	Tolerance     decimal.Decimal
	MaxIterations int
}

// DefaultIRRSolver brackets [-0.9, 10.0] with a 1e-6 tolerance and 100 iterations
func DefaultIRRSolver() IRRSolver {
	return IRRSolver{
		Low:           decimal.RequireFromString("-0.9"),
		High:          decimal.NewFromInt(10),
		Tolerance:     decimal.New(1, -6),
		MaxIterations: 100,
	}
}

// IRR solves with the default bracket
func IRR(cf domain.CashFlowSeries) *decimal.Decimal {
	return DefaultIRRSolver().Solve(cf)
}

// Solve returns the rate at which NPV is zero, or nil when the NPV has the same
// sign at both ends of the bracket, however close to zero either end is. Once
// the bracket holds a sign change, an endpoint within tolerance of zero is
// returned as the root. When the iteration budget runs out the midpoint of the final
// bracket is returned. Series with several sign changes may have several IRRs;
// only one is found.
func (s IRRSolver) Solve(cf domain.CashFlowSeries) *decimal.Decimal {
	if len(cf) == 0 || s.Low.LessThanOrEqual(one.Neg()) || s.High.LessThanOrEqual(s.Low) {
		return nil
	}

	lo, hi := s.Low, s.High
	fLo, fHi := npv(lo, cf), npv(hi, cf)

	if fLo.Sign()*fHi.Sign() > 0 {
		return nil
	}
	if fLo.Abs().LessThan(s.Tolerance) {
		return &lo
	}
	if fHi.Abs().LessThan(s.Tolerance) {
		return &hi
	}

	for i := 0; i < s.MaxIterations; i++ {
		mid := lo.Add(hi).Div(two)
		fMid := npv(mid, cf)
		if fMid.Abs().LessThan(s.Tolerance) {
			return &mid
		}
		if fLo.Sign()*fMid.Sign() < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}

	mid := lo.Add(hi).Div(two)
	return &mid
}

// SignChanges counts sign flips in the series, skipping zero entries.
// More than one flip means more than one IRR may exist.
func SignChanges(cf domain.CashFlowSeries) int {
	changes, prev := 0, 0
	for _, v := range cf {
		sign := v.Sign()
		if sign == 0 {
			continue
		}
		if prev != 0 && sign != prev {
			changes++
		}
		prev = sign
	}
	return changes
}
