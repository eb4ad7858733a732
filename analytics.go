package veilmail

import (
	"context"
	"net/http"
	"time"

	"github.com/Resonia-Health/veilmail-go/internal/api"
)

// Interval is the bucket size of a time series.
type Interval string

const (
	IntervalHour  Interval = "hour"
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// AnalyticsParams bound an analytics query. Zero times use the server's
// default window.
type AnalyticsParams struct {
	From     *time.Time `url:"from,omitempty"`
	To       *time.Time `url:"to,omitempty"`
	DomainID string     `url:"domainId,omitempty"`
	Tag      string     `url:"tag,omitempty"`
}

// TimeseriesParams select a time series.
type TimeseriesParams struct {
	AnalyticsParams
	Interval Interval `url:"interval,omitempty"`
	// Metrics restricts the series, e.g. "sent", "opened".
	Metrics []string `url:"metrics,omitempty,comma"`
}

// Metrics are aggregated delivery counters and rates.
type Metrics struct {
	Sent         int     `json:"sent"`
	Delivered    int     `json:"delivered"`
	Opened       int     `json:"opened"`
	Clicked      int     `json:"clicked"`
	Bounced      int     `json:"bounced"`
	Complained   int     `json:"complained"`
	Unsubscribed int     `json:"unsubscribed"`
	DeliveryRate float64 `json:"deliveryRate"`
	OpenRate     float64 `json:"openRate"`
	ClickRate    float64 `json:"clickRate"`
	BounceRate   float64 `json:"bounceRate"`
}

// Overview is account-wide metrics for a period.
type Overview struct {
	Metrics
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// TimeseriesPoint is one bucket of a time series.
type TimeseriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Metrics
}

// Timeseries is a bucketed metric series.
type Timeseries struct {
	Interval Interval          `json:"interval"`
	Points   []TimeseriesPoint `json:"points"`
}

// LinkStats counts clicks on one link.
type LinkStats struct {
	URL          string `json:"url"`
	Clicks       int    `json:"clicks"`
	UniqueClicks int    `json:"uniqueClicks"`
}

// CampaignAnalytics is the performance of one campaign.
type CampaignAnalytics struct {
	CampaignID string `json:"campaignId"`
	Metrics
	Links []LinkStats `json:"links,omitempty"`
}

// AnalyticsService reads delivery metrics.
type AnalyticsService service

// Overview returns account-wide metrics.
func (s *AnalyticsService) Overview(ctx context.Context, params *AnalyticsParams) (*Overview, error) {
	return queryOne[Overview](ctx, s, "/v1/analytics/overview", params)
}

// Timeseries returns metrics bucketed by interval.
func (s *AnalyticsService) Timeseries(ctx context.Context, params *TimeseriesParams) (*Timeseries, error) {
	return queryOne[Timeseries](ctx, s, "/v1/analytics/timeseries", params)
}

// Campaign returns the performance of one campaign.
func (s *AnalyticsService) Campaign(ctx context.Context, campaignID string) (*CampaignAnalytics, error) {
	v, err := queryOne[CampaignAnalytics](ctx, s, pathf("/v1/analytics/campaigns/%s", campaignID), nil)
	return v, wrapNotFound(err, "campaign", campaignID)
}

func queryOne[T any](ctx context.Context, s *AnalyticsService, path string, params any) (*T, error) {
	var opts []api.RequestOption
	if params != nil {
		opts = append(opts, api.WithQuery(params))
	}
	return call[T](ctx, s.api, http.MethodGet, path, nil, opts...)
}
