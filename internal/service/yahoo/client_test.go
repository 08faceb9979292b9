package yahoo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MomentumReport/internal/domain/models"
)

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"SPY"},
"timestamp":[1760918400,1761004800,1761091200],
"indicators":{"quote":[{"open":[1,2,3],"high":[2,3,4],"low":[0.5,1.5,2.5],
"close":[1.5,null,3.5],"volume":[100,200,null]}]}}],"error":null}}`

func TestDailyCandles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/SPY", r.URL.Path)
		assert.Equal(t, "5d", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, chartBody)
	}))
	defer srv.Close()

	c := New(srv.URL, 100, time.Second)
	got, err := c.DailyCandles(context.Background(), "SPY", "5d", time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 2, "bar with null close is skipped")

	assert.Equal(t, 1.5, got[0].Close)
	assert.Equal(t, 100.0, got[0].Volume)
	assert.Equal(t, time.Unix(1760918400, 0).UTC(), got[0].Bucket)
	assert.Equal(t, 3.5, got[1].Close)
	assert.Equal(t, 0.0, got[1].Volume)
	assert.Equal(t, "SPY", got[1].Symbol)
}

func TestDailyCandlesEscapesSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/^VIX", r.URL.Path)
		_, _ = io.WriteString(w, chartBody)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 100, time.Second).DailyCandles(context.Background(), "^VIX", "5d", time.Time{})
	require.NoError(t, err)
}

func TestDailyCandlesUpstreamErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"chart error": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
		},
		"empty result": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"chart":{"result":[],"error":null}}`)
		},
		"http 500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html>")
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := New(srv.URL, 100, time.Second).DailyCandles(context.Background(), "XYZ", "1mo", time.Time{})
			assert.ErrorIs(t, err, models.ErrUpstreamDataUnavailable)
		})
	}
}

func TestDailyCandlesHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("http://127.0.0.1:0", 1, time.Second).DailyCandles(ctx, "SPY", "5d", time.Time{})
	assert.ErrorIs(t, err, models.ErrUpstreamDataUnavailable)
}

func TestDailyCandlesWindow(t *testing.T) {
	today := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

	t.Run("today uses range", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "1mo", q.Get("range"))
			assert.Empty(t, q.Get("period1"))
			assert.Empty(t, q.Get("period2"))
			_, _ = io.WriteString(w, chartBody)
		}))
		defer srv.Close()

		c := New(srv.URL, 100, time.Second)
		c.now = func() time.Time { return today }
		_, err := c.DailyCandles(context.Background(), "SPY", "1mo", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	})

	t.Run("past month uses periods", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Empty(t, q.Get("range"))
			assert.Equal(t, "1d", q.Get("interval"))
			assert.Equal(t, "1789344000", q.Get("period1")) // 2026-09-14
			assert.Equal(t, "1791936000", q.Get("period2")) // 2026-10-14
			_, _ = io.WriteString(w, chartBody)
		}))
		defer srv.Close()

		c := New(srv.URL, 100, time.Second)
		c.now = func() time.Time { return today }
		got, err := c.DailyCandles(context.Background(), "SPY", "1mo", time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("past day range keeps trailing bars", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.URL.Query().Get("period1"))
			_, _ = io.WriteString(w, chartBody)
		}))
		defer srv.Close()

		c := New(srv.URL, 100, time.Second)
		c.now = func() time.Time { return today }
		got, err := c.DailyCandles(context.Background(), "SPY", "1d", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 3.5, got[0].Close)
	})
}

func TestRangeStart(t *testing.T) {
	end := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	start, bars, ok := rangeStart("5d", end)
	require.True(t, ok)
	assert.Equal(t, 5, bars)
	assert.Equal(t, time.Date(2026, 10, 8, 0, 0, 0, 0, time.UTC), start)

	start, bars, ok = rangeStart("3mo", end)
	require.True(t, ok)
	assert.Zero(t, bars)
	assert.Equal(t, time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC), start)

	for _, bad := range []string{"", "max", "ytd", "0d", "5h"} {
		_, _, ok := rangeStart(bad, end)
		assert.False(t, ok, bad)
	}
}
