package calculation

import (
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	twelve = decimal.NewFromInt(12)
	sixty  = decimal.NewFromInt(60)
)

// ComputeTimeSavings derives the engineer time-savings benefit. Minutes saved
// per change may be negative when automation is slower; the result is not floored.
func ComputeTimeSavings(in domain.ScenarioInputs) domain.TimeSavings {
	manual := in.ManualMinutes.Total()
	automated := in.AutomatedMinutes.Total()
	saved := manual.Sub(automated)

	tasksPerYear := in.TasksPerMonth.Mul(twelve)
	automatedTasks := tasksPerYear.Mul(in.AutomationCoveragePct).Div(hundred)
	hours := saved.Mul(automatedTasks).Div(sixty)

	return domain.TimeSavings{
		TasksPerYear:          tasksPerYear,
		ManualMinutes:         manual,
		AutomatedMinutes:      automated,
		MinutesSavedPerChange: saved,
		HoursSavedPerChange:   saved.Div(sixty),
		AutomatedTasksPerYear: automatedTasks,
		AnnualHoursSaved:      hours,
		AnnualCostSavings:     hours.Mul(in.HourlyRate),
	}
}
