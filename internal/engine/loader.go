package engine

import (
	"context"
	"log/slog"

	"github.com/wanderplan/compass/internal/metrics"
	"github.com/wanderplan/compass/internal/store"
)

// SettingsSource is the slice of the store the loader needs.
type SettingsSource interface {
	GetEngineSettings(ctx context.Context) (*store.EngineSettings, error)
}

// SettingsLoader fetches the singleton settings record and converts it for
// the engine. Any failure — missing row, scan error, unreachable store —
// silently yields DefaultSettings. This is a deliberate degradation
// policy, not an error condition: ranking must keep working while someone
// fixes the settings row.
type SettingsLoader struct {
	source SettingsSource
	logger *slog.Logger
}

func NewSettingsLoader(source SettingsSource, logger *slog.Logger) *SettingsLoader {
	return &SettingsLoader{source: source, logger: logger}
}

// Load never fails; the caller always gets usable settings.
func (l *SettingsLoader) Load(ctx context.Context) Settings {
	rec, err := l.source.GetEngineSettings(ctx)
	if err != nil {
		l.logger.Warn("settings fetch failed, using defaults", "error", err)
		metrics.SettingsFallbacks.Inc()
		return DefaultSettings()
	}
	if rec == nil {
		l.logger.Debug("no settings record, using defaults")
		metrics.SettingsFallbacks.Inc()
		return DefaultSettings()
	}

	s := SettingsFromRecord(rec)
	if err := s.Validate(); err != nil {
		l.logger.Warn("stored settings invalid, using defaults", "error", err)
		metrics.SettingsFallbacks.Inc()
		return DefaultSettings()
	}
	return s
}
