package budget

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/event_bus"
)

// RegisterAlertNotifier re-evaluates budgets whenever an expense is recorded
// and logs a warning for every budget the new expense pushed over, or close
// to, its limit.
func RegisterAlertNotifier(bus *event_bus.EventBus, service BudgetService) {
	bus.Subscribe(event_bus.ExpenseCreated, func(e event_bus.Event) error {
		data, ok := e.Data.(event_bus.ExpenseCreatedData)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", e.Data)
		}

		overviews, err := service.GetOverview(e.Context())
		if err != nil {
			return fmt.Errorf("could not evaluate budgets: %w", err)
		}
		for _, overview := range overviews {
			if overview.Budget.Category != "" && overview.Budget.Category != data.Category {
				continue
			}
			if overview.Status.Classification == OnTrack {
				continue
			}
			log.Warn(AlertLine(overview))
		}
		return nil
	})
}
