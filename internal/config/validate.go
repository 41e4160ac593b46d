package config

import (
	"fmt"
	"net/url"
	"slices"
)

// ValidationReport contains the results of config validation
type ValidationReport struct {
	Warnings []string
	Errors   []string
}

// IsValid reports whether the config can be used as is.
func (r *ValidationReport) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate checks values that JSON decoding alone cannot catch.
func (c *Config) Validate() *ValidationReport {
	report := &ValidationReport{Warnings: []string{}, Errors: []string{}}

	if u, err := url.Parse(c.GitHub.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		report.Errors = append(report.Errors, fmt.Sprintf("github.api_url %q is not an absolute URL", c.GitHub.APIURL))
	}
	if !slices.Contains([]string{SurfaceDesktop, SurfaceConsole, SurfaceBoth}, c.Notifications.Surface) {
		report.Errors = append(report.Errors, fmt.Sprintf("notifications.surface %q is not supported", c.Notifications.Surface))
	}
	if !slices.Contains([]string{BadgeTerminal, BadgeFile, BadgeBoth, BadgeNone}, c.Badge.Kind) {
		report.Errors = append(report.Errors, fmt.Sprintf("badge.kind %q is not supported", c.Badge.Kind))
	}
	if (c.Badge.Kind == BadgeFile || c.Badge.Kind == BadgeBoth) && c.Badge.File == "" {
		report.Errors = append(report.Errors, fmt.Sprintf("badge.kind is %q but badge.file is empty", c.Badge.Kind))
	}
	if !slices.Contains([]string{BackendJSON, BackendSQLite}, c.Storage.Backend) {
		report.Errors = append(report.Errors, fmt.Sprintf("storage.backend %q is not supported", c.Storage.Backend))
	}

	if c.Watch.IntervalSeconds < 30 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("watch.interval_seconds=%d polls GitHub very often and may hit rate limits", c.Watch.IntervalSeconds))
	}
	if !c.Watch.SingleFlight {
		report.Warnings = append(report.Warnings, "watch.single_flight is off: overlapping cycles may show a notification twice")
	}
	return report
}

// Validate loads the config at path and checks it.
func Validate(path string) (*ValidationReport, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Validate(), nil
}
