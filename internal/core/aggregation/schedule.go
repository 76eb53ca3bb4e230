package aggregation

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// cronParser accepts standard 5-field specs, 6-field specs with a leading seconds
// field ("0 5 * * * *") and descriptors such as "@hourly".
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSchedule parses a cron spec evaluated in UTC.
func ParseSchedule(spec string) (cron.Schedule, error) {
	schedule, err := cronParser.Parse("CRON_TZ=UTC " + spec)
	if err != nil {
		return nil, fmt.Errorf("invalid aggregation schedule %q: %w", spec, err)
	}
	return schedule, nil
}
