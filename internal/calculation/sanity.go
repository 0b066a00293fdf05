package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

func perUnit(v decimal.Decimal, units decimal.Decimal) *decimal.Decimal {
	if units.IsZero() {
		return nil
	}
	out := v.Div(units)
	return &out
}

// ComputeSanity produces per-device, per-site and per-change gut-check figures
// plus the one-year quick ROI on engineer time.
func ComputeSanity(in domain.ScenarioInputs, ts domain.TimeSavings, annualTotalBenefit decimal.Decimal) domain.SanityMetrics {
	devices := decimal.NewFromInt(int64(in.Footprint.TotalDevices()))
	sites := decimal.NewFromInt(int64(in.Footprint.Locations))

	cost := in.QuickROI.ImplementHours.Add(in.QuickROI.MaintainHoursPerYear).Mul(in.HourlyRate)
	var roi *decimal.Decimal
	if !cost.IsZero() {
		v := ts.AnnualCostSavings.Sub(cost).Div(cost).Mul(hundred)
		roi = &v
	}

	return domain.SanityMetrics{
		TotalDevices:            in.Footprint.TotalDevices(),
		HoursPerDevicePerYear:   perUnit(ts.AnnualHoursSaved, devices),
		HoursPerSitePerYear:     perUnit(ts.AnnualHoursSaved, sites),
		BenefitPerDevicePerYear: perUnit(annualTotalBenefit, devices),
		BenefitPerSitePerYear:   perUnit(annualTotalBenefit, sites),
		BenefitPerChange:        perUnit(annualTotalBenefit, ts.TasksPerYear),
		QuickROICost:            cost,
		QuickROIPct:             roi,
	}
}

// FirstYearTotalCost is the cash spent in the first year: the Year-0 project
// cost (remediation included) plus one year of effective run cost.
func FirstYearTotalCost(projectCost, annualRunCost decimal.Decimal) decimal.Decimal {
	return projectCost.Add(annualRunCost)
}

// WaitingDaysSaved is the per-site deployment wait removed by automation, never negative
func WaitingDaysSaved(w domain.WaitingTime) decimal.Decimal {
	return decimal.Max(w.ManualDays.Sub(w.AutomatedDays), decimal.Zero)
}

// WaitingTimeBenefit values shorter deployment waits as
// days saved × value per site-day × sites per year.
func WaitingTimeBenefit(w domain.WaitingTime) decimal.Decimal {
	return WaitingDaysSaved(w).Mul(w.ValuePerSiteDay).Mul(w.SitesPerYear)
}

// WaitingTimeMethodology describes how a waiting-time estimate was derived
func WaitingTimeMethodology(w domain.WaitingTime) string {
	return fmt.Sprintf("Manual duration %s days, automated duration %s days, %s days saved per site; %s sites/year; business value ≈ $%s per site per day.",
		w.ManualDays.String(), w.AutomatedDays.String(), WaitingDaysSaved(w).String(),
		w.SitesPerYear.String(), w.ValuePerSiteDay.StringFixed(0))
}

// ApplyWaitingTimeEstimates fills the annual value of benefits that carry a
// waiting-time block and no entered value. Entered values always win.
func ApplyWaitingTimeEstimates(benefits []domain.BenefitItem) {
	for i := range benefits {
		b := &benefits[i]
		if b.WaitingTime == nil || !b.AnnualValue.IsZero() {
			continue
		}
		b.AnnualValue = WaitingTimeBenefit(*b.WaitingTime)
		if b.Methodology == "" {
			b.Methodology = WaitingTimeMethodology(*b.WaitingTime)
		}
	}
}
