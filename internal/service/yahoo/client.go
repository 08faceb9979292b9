package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"MomentumReport/internal/domain/models"
	domsvc "MomentumReport/internal/domain/service"
	xhttp "MomentumReport/pkg/http"
)

const userAgent = "Mozilla/5.0 (compatible; momentum-report/1.0)"

// Client implements MarketDataProvider against the Yahoo Finance chart API.
type Client struct {
	baseURL string
	http    *xhttp.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// New creates a chart API client paced at rps requests per second.
func New(baseURL string, rps float64, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent(userAgent)),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		now:     time.Now,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCandles returns daily bars for symbol over rng (e.g. "5d", "1mo"),
// oldest first, ending on asOf. A window that ends today, or a zero asOf, is
// queried by range; a past day is queried by period1/period2. Bars with a
// missing close are skipped.
func (c *Client) DailyCandles(ctx context.Context, symbol, rng string, asOf time.Time) ([]models.Candle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("yahoo %s: %w: %v", symbol, models.ErrUpstreamDataUnavailable, err)
	}

	var cr chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol),
		QueryParams: c.window(rng, asOf),
	}, &cr)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w: %v", symbol, models.ErrUpstreamDataUnavailable, err)
	}

	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo %s: %w: %s: %s", symbol, models.ErrUpstreamDataUnavailable, cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w: empty chart", symbol, models.ErrUpstreamDataUnavailable)
	}

	res := cr.Chart.Result[0]
	q := res.Indicators.Quote[0]
	out := make([]models.Candle, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		cl := at(q.Close, i)
		if cl == nil {
			continue
		}
		out = append(out, models.Candle{
			Bucket: time.Unix(ts, 0).UTC(),
			Symbol: symbol,
			Open:   value(at(q.Open, i)),
			High:   value(at(q.High, i)),
			Low:    value(at(q.Low, i)),
			Close:  *cl,
			Volume: value(at(q.Volume, i)),
		})
	}
	if _, bars, ok := c.historical(rng, asOf); ok && bars > 0 && len(out) > bars {
		out = out[len(out)-bars:]
	}
	return out, nil
}

func (c *Client) window(rng string, asOf time.Time) map[string][]string {
	q := map[string][]string{"interval": {"1d"}}
	start, _, ok := c.historical(rng, asOf)
	if !ok {
		q["range"] = []string{rng}
		return q
	}
	q["period1"] = []string{strconv.FormatInt(start.Unix(), 10)}
	q["period2"] = []string{strconv.FormatInt(endOfDay(asOf).Unix(), 10)}
	return q
}

// historical reports whether asOf lies before today and, if so, the window
// start for rng. bars is the number of trading bars to keep for day ranges.
func (c *Client) historical(rng string, asOf time.Time) (start time.Time, bars int, ok bool) {
	if asOf.IsZero() || endOfDay(asOf).After(c.now()) {
		return time.Time{}, 0, false
	}
	return rangeStart(rng, endOfDay(asOf))
}

// rangeStart maps a chart range such as "5d", "2wk", "1mo" or "1y" onto a start
// time before end. Day ranges count trading days, so the calendar window is
// padded for weekends and holidays and bars is set to trim the result.
func rangeStart(rng string, end time.Time) (start time.Time, bars int, ok bool) {
	unit := strings.TrimLeft(rng, "0123456789")
	n, err := strconv.Atoi(strings.TrimSuffix(rng, unit))
	if err != nil || n <= 0 {
		return time.Time{}, 0, false
	}

	switch unit {
	case "d":
		return end.AddDate(0, 0, -(n*7/5 + 5)), n, true
	case "wk":
		return end.AddDate(0, 0, -7*n), 0, true
	case "mo":
		return end.AddDate(0, -n, 0), 0, true
	case "y":
		return end.AddDate(-n, 0, 0), 0, true
	default:
		return time.Time{}, 0, false
	}
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

func at(xs []*float64, i int) *float64 {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

var _ domsvc.MarketDataProvider = (*Client)(nil)
