package bootstrap

import (
	"time"

	"padel-club-api/internal/domain/schedule"
	"padel-club-api/internal/pkg/config"

	"go.uber.org/fx"
)

// ClubModule compiles the club's static business configuration into the
// runtime values the rest of the app consumes: the club timezone and the
// weekly opening-hours bitmap.
var ClubModule = fx.Module("club",
	fx.Provide(
		NewClubLocation,
		NewWeeklySchedule,
	),
)

func NewClubLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Club.Timezone)
}

func NewWeeklySchedule(cfg config.Config) (*schedule.WeeklySchedule, error) {
	hours, err := schedule.NewWeeklySchedule(cfg.Club.OpenTime, cfg.Club.CloseTime, cfg.Club.DayOverrides())
	if err != nil {
		return nil, err
	}
	return &hours, nil
}
