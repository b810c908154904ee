package timezone

import (
	"agenda/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	location *time.Location
	once     sync.Once
	mu       sync.RWMutex
)

// load resolves APP_TIMEZONE the first time a helper needs it.
func load() *time.Location {
	once.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			name = "UTC"
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")

			loc = time.UTC
		}

		setLocation(loc)
	})

	mu.RLock()
	defer mu.RUnlock()

	return location
}

func setLocation(loc *time.Location) {
	mu.Lock()
	location = loc
	mu.Unlock()
}

// SetLocation overrides the application timezone with an IANA name such as "Asia/Jakarta".
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	once.Do(func() {})
	setLocation(loc)

	return nil
}

func GetLocation() *time.Location {
	return load()
}

func Now() time.Time {
	return time.Now().In(load())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(load())
}

// Parse reads a wall clock value in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, load()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
