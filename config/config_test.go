package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SlotGranularityMins != 60 {
		t.Errorf("granularity = %d, want 60", cfg.SlotGranularityMins)
	}
	if cfg.HourlyRate != 7.5 {
		t.Errorf("hourly rate = %v, want 7.5", cfg.HourlyRate)
	}
	if cfg.SlotCacheTTL != 30*time.Second {
		t.Errorf("slot cache ttl = %v, want 30s", cfg.SlotCacheTTL)
	}
	windows, err := cfg.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(windows) != 2 || windows[0].Start != 480 || windows[1].End != 1260 {
		t.Errorf("unexpected default sessions %+v", windows)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("CLUB_SESSIONS", "07:00-12:00")
	t.Setenv("HOURLY_RATE", "10")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("store driver = %q, want sqlite", cfg.StoreDriver)
	}
	if cfg.HourlyRate != 10 {
		t.Errorf("hourly rate = %v, want 10", cfg.HourlyRate)
	}
	if AppConfig.ClubSessions != "07:00-12:00" {
		t.Errorf("AppConfig not updated: %q", AppConfig.ClubSessions)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := Config{
		Env:                  "development",
		StoreDriver:          "sqlite",
		ClubSessions:         "08:00-11:00",
		SlotGranularityMins:  60,
		BookingAlignmentMins: 30,
		HourlyRate:           7.5,
		MaxRequestsPerMin:    100,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base config should be valid: %v", err)
	}

	cases := map[string]func(c *Config){
		"overlapping sessions": func(c *Config) { c.ClubSessions = "08:00-11:00,10:00-12:00" },
		"zero granularity":     func(c *Config) { c.SlotGranularityMins = 0 },
		"negative rate":        func(c *Config) { c.HourlyRate = -1 },
		"unknown driver":       func(c *Config) { c.StoreDriver = "postgres" },
		"production no secret": func(c *Config) { c.Env = "production" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
