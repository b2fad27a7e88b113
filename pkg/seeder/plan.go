package seeder

import (
	"fmt"
	"time"

	"mediaseed/pkg/config"
)

const (
	CategoryTravel  = "travel"
	CategoryProfile = "profile"
)

// Entry is one planned image: where it comes from and where it goes
type Entry struct {
	Category      string
	Index         int
	Filename      string
	PrimaryURL    string
	PrimaryDelay  time.Duration
	FallbackURL   string
	FallbackDelay time.Duration
}

// HasFallback reports whether a second source is tried when the first fails
func (e Entry) HasFallback() bool {
	return e.FallbackURL != ""
}

// Plan lists every image a run will attempt, in order
type Plan struct {
	Travel  []Entry
	Profile []Entry
}

// TravelURL returns the placeholder URL for travel image i
func TravelURL(c config.TravelConfig, i int) string {
	return fmt.Sprintf("%s/%d/%d?random=%d", c.PlaceholderBase, c.Width, c.Height, i+c.SeedOffset)
}

// TravelFilename returns the two digit travel filename for ordinal i
func TravelFilename(i int) string {
	return fmt.Sprintf("travel_image_%02d.jpg", i)
}

// ProfileFallbackURL returns the placeholder URL used when the face service fails for i
func ProfileFallbackURL(c config.ProfileConfig, i int) string {
	return fmt.Sprintf("%s/%d/%d?random=%d", c.FallbackBase, c.FallbackWidth, c.FallbackHeight, i+c.FallbackSeedOffset)
}

// ProfileFilename returns the three digit profile filename for ordinal i
func ProfileFilename(i int) string {
	return fmt.Sprintf("profile_%03d.jpg", i)
}

// BuildPlan expands the configuration into the full ordered list of images
func BuildPlan(cfg *config.Config) Plan {
	plan := Plan{
		Travel:  make([]Entry, 0, cfg.Travel.Count),
		Profile: make([]Entry, 0, cfg.Profile.Count),
	}

	for i := 1; i <= cfg.Travel.Count; i++ {
		plan.Travel = append(plan.Travel, Entry{
			Category:     CategoryTravel,
			Index:        i,
			Filename:     TravelFilename(i),
			PrimaryURL:   TravelURL(cfg.Travel, i),
			PrimaryDelay: cfg.Travel.Delay,
		})
	}

	for i := 1; i <= cfg.Profile.Count; i++ {
		plan.Profile = append(plan.Profile, Entry{
			Category:      CategoryProfile,
			Index:         i,
			Filename:      ProfileFilename(i),
			PrimaryURL:    cfg.Profile.PrimaryURL,
			PrimaryDelay:  cfg.Profile.PrimaryDelay,
			FallbackURL:   ProfileFallbackURL(cfg.Profile, i),
			FallbackDelay: cfg.Profile.FallbackDelay,
		})
	}

	return plan
}

// FilenameRange renders "first to last" for a batch, or "" when it is empty
func FilenameRange(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	return fmt.Sprintf("%s to %s", entries[0].Filename, entries[len(entries)-1].Filename)
}
