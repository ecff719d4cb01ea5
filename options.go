package xlcell

import "time"

// Options holds configuration for a Workbook.
type Options struct {
	password          string
	location          *time.Location
	date1904          *bool
	recalculateOnOpen bool
}

func defaultOptions() *Options {
	return &Options{
		location: time.UTC,
	}
}

// Option configures a Workbook.
type Option func(*Options)

// WithPassword sets the password used to open an encrypted workbook.
func WithPassword(password string) Option {
	return func(o *Options) { o.password = password }
}

// WithLocation sets the location decoded timestamps are placed in
// (default: UTC). Date serials carry no zone, so the wall clock is kept.
func WithLocation(loc *time.Location) Option {
	return func(o *Options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithDate1904 overrides the workbook's date system when decoding serials.
func WithDate1904(use1904 bool) Option {
	return func(o *Options) { o.date1904 = &use1904 }
}

// WithRecalculateOnOpen tells Excel to recalculate all formulas when the saved file is opened.
func WithRecalculateOnOpen(recalc bool) Option {
	return func(o *Options) { o.recalculateOnOpen = recalc }
}
