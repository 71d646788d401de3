package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobil-koeln/placepicker/internal/models"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.HighAccuracy)
	assert.Equal(t, 20*time.Second, opts.Timeout)
	assert.Equal(t, time.Second, opts.MaximumAge)
}

func TestAvailable(t *testing.T) {
	assert.False(t, Available(nil))
	assert.False(t, Available(Unavailable{}))
	assert.True(t, Available(Fixed{}))
	assert.True(t, Available(LocatorFunc(func(context.Context, Options) (models.Point, error) {
		return models.Point{}, nil
	})))
}

func TestLocate_Fixed(t *testing.T) {
	want := models.Point{Lat: 50.9413, Lng: 6.9583}
	got, err := Locate(context.Background(), Fixed{Position: want}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocate_Unavailable(t *testing.T) {
	_, err := Locate(context.Background(), Unavailable{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLocate_Timeout(t *testing.T) {
	slow := LocatorFunc(func(ctx context.Context, _ Options) (models.Point, error) {
		<-ctx.Done()
		return models.Point{}, ctx.Err()
	})

	_, err := Locate(context.Background(), slow, Options{Timeout: 10 * time.Millisecond})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocate_PassesOptions(t *testing.T) {
	var seen Options
	l := LocatorFunc(func(_ context.Context, opts Options) (models.Point, error) {
		seen = opts
		return models.Point{}, nil
	})

	_, err := Locate(context.Background(), l, Options{HighAccuracy: true})
	require.NoError(t, err)
	assert.True(t, seen.HighAccuracy)
}

func TestLocate_LocatorError(t *testing.T) {
	denied := errors.New("permission denied")
	l := LocatorFunc(func(context.Context, Options) (models.Point, error) {
		return models.Point{}, denied
	})

	_, err := Locate(context.Background(), l, DefaultOptions())
	assert.ErrorIs(t, err, denied)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestFixed_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fixed{}.CurrentPosition(ctx, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Point
		wantErr bool
	}{
		{"50.9413,6.9583", models.Point{Lat: 50.9413, Lng: 6.9583}, false},
		{" 50.9413 , 6.9583 ", models.Point{Lat: 50.9413, Lng: 6.9583}, false},
		{"-33.8688:151.2093", models.Point{Lat: -33.8688, Lng: 151.2093}, false},
		{"50.9413", models.Point{}, true},
		{"north,east", models.Point{}, true},
		{"91,0", models.Point{}, true},
		{"0,181", models.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromString(t *testing.T) {
	l, err := FromString("")
	require.NoError(t, err)
	assert.False(t, Available(l))

	l, err = FromString("50.9413,6.9583")
	require.NoError(t, err)
	assert.Equal(t, Fixed{Position: models.Point{Lat: 50.9413, Lng: 6.9583}}, l)

	_, err = FromString("nowhere")
	assert.Error(t, err)
}
