// Package geo provides the position sources used by the current-location row.
package geo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mobil-koeln/placepicker/internal/models"
)

const (
	DefaultTimeout    = 20 * time.Second
	DefaultMaximumAge = time.Second
)

var (
	// ErrUnavailable is returned by locators that cannot produce a position at all
	ErrUnavailable = errors.New("geolocation unavailable")

	// ErrTimeout is returned when no position arrived within Options.Timeout
	ErrTimeout = errors.New("geolocation timed out")
)

// Options mirror the usual position request options
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultOptions returns low accuracy, a 20s timeout and a 1s maximum age.
func DefaultOptions() Options {
	return Options{
		Timeout:    DefaultTimeout,
		MaximumAge: DefaultMaximumAge,
	}
}

// Locator resolves the device position.
type Locator interface {
	CurrentPosition(ctx context.Context, opts Options) (models.Point, error)
}

// Availability is implemented by locators that know up front whether they
// can ever answer. Locators without it are assumed available.
type Availability interface {
	Available() bool
}

// Available reports whether l can be asked for a position.
func Available(l Locator) bool {
	if l == nil {
		return false
	}
	if a, ok := l.(Availability); ok {
		return a.Available()
	}
	return true
}

// Locate asks l for a position, bounded by opts.Timeout.
func Locate(ctx context.Context, l Locator, opts Options) (models.Point, error) {
	if !Available(l) {
		return models.Point{}, ErrUnavailable
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	p, err := l.CurrentPosition(ctx, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.Point{}, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return models.Point{}, err
	}
	return p, nil
}

// Fixed always reports the same position
type Fixed struct {
	Position models.Point
}

func (f Fixed) CurrentPosition(ctx context.Context, _ Options) (models.Point, error) {
	if err := ctx.Err(); err != nil {
		return models.Point{}, err
	}
	return f.Position, nil
}

// Unavailable never yields a position
type Unavailable struct{}

func (Unavailable) CurrentPosition(context.Context, Options) (models.Point, error) {
	return models.Point{}, ErrUnavailable
}

func (Unavailable) Available() bool { return false }

// LocatorFunc adapts a function to the Locator interface
type LocatorFunc func(ctx context.Context, opts Options) (models.Point, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context, opts Options) (models.Point, error) {
	return f(ctx, opts)
}

// ParsePoint parses "lat,lng" (a colon also separates).
func ParsePoint(s string) (models.Point, error) {
	s = strings.TrimSpace(s)
	sep := ","
	if !strings.Contains(s, sep) {
		sep = ":"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return models.Point{}, fmt.Errorf("invalid position %q, expected LAT,LNG", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	if lat < -90 || lat > 90 {
		return models.Point{}, fmt.Errorf("latitude %v out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return models.Point{}, fmt.Errorf("longitude %v out of range", lng)
	}
	return models.Point{Lat: lat, Lng: lng}, nil
}

// FromString returns a Fixed locator for a configured "lat,lng" position,
// or Unavailable when s is empty.
func FromString(s string) (Locator, error) {
	if strings.TrimSpace(s) == "" {
		return Unavailable{}, nil
	}
	p, err := ParsePoint(s)
	if err != nil {
		return nil, err
	}
	return Fixed{Position: p}, nil
}
