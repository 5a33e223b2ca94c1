package config

import "testing"

func TestFillDefaults(t *testing.T) {
	var c Config
	c.FillDefaults()

	if c.App.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", c.App.LogLevel)
	}
	if c.Ghost.Timeout != "30s" {
		t.Errorf("Ghost.Timeout = %q, want 30s", c.Ghost.Timeout)
	}
	if c.Output.Dir != "./ghost_posts" {
		t.Errorf("Output.Dir = %q", c.Output.Dir)
	}
	if c.Output.WebPQuality != 85 {
		t.Errorf("WebPQuality = %d, want 85", c.Output.WebPQuality)
	}
	if c.Sync.Interval != "1h" {
		t.Errorf("Sync.Interval = %q, want 1h", c.Sync.Interval)
	}
	if c.Redis.Addr != "127.0.0.1:6379" {
		t.Errorf("Redis.Addr = %q", c.Redis.Addr)
	}
	if c.Digest.TopN != 10 {
		t.Errorf("Digest.TopN = %d, want 10", c.Digest.TopN)
	}
}

func TestFillDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{}
	c.App.LogLevel = "debug"
	c.Output.Dir = "/var/archive"
	c.Output.WebPQuality = 60
	c.Digest.TopN = 3
	c.FillDefaults()

	if c.App.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", c.App.LogLevel)
	}
	if c.Output.Dir != "/var/archive" {
		t.Errorf("Output.Dir = %q", c.Output.Dir)
	}
	if c.Output.WebPQuality != 60 {
		t.Errorf("WebPQuality = %d, want 60", c.Output.WebPQuality)
	}
	if c.Digest.TopN != 3 {
		t.Errorf("Digest.TopN = %d, want 3", c.Digest.TopN)
	}
}

func TestFillDefaultsClampsQuality(t *testing.T) {
	c := Config{}
	c.Output.WebPQuality = 150
	c.FillDefaults()
	if c.Output.WebPQuality != 85 {
		t.Errorf("WebPQuality = %d, want 85", c.Output.WebPQuality)
	}
}
