package events

import (
	"encoding/json"
	"log/slog"
)

// SetupBookkeeping subscribes to the operational subjects so admin actions
// leave a trace in the service log even when they originate from another
// instance. Safe to call with a nil client.
func SetupBookkeeping(c Client, logger *slog.Logger) error {
	if c == nil {
		return nil
	}

	if err := c.Subscribe(SubjectSettingsUpdated, func(subject string, data []byte) {
		var evt SettingsUpdatedEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			logger.Warn("malformed settings event", "subject", subject, "error", err)
			return
		}
		logger.Info("engine settings updated",
			"updated_by", evt.UpdatedBy,
			"split_hotel", evt.SplitRatioHotel,
			"split_food", evt.SplitRatioFood,
			"split_activity", evt.SplitRatioActivity,
			"penalty_per_km", evt.PenaltyPerKm,
		)
	}); err != nil {
		return err
	}

	return c.Subscribe(SubjectVenueImports, func(subject string, data []byte) {
		var evt VenuesImportedEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			logger.Warn("malformed import event", "subject", subject, "error", err)
			return
		}
		logger.Info("venue import completed",
			"city", evt.City,
			"imported", evt.Imported,
			"skipped", evt.Skipped,
			"source", evt.Source,
		)
	})
}
