package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/proftafla/exam-service/internal/config"
	apperrors "github.com/proftafla/exam-service/pkg/util/errorutil"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Client fetches department exam schedules from the ugla portal.
type Client struct {
	http       *resty.Client
	baseURL    string
	siteID     string
	scheduleID string
}

// NewClient creates an upstream client from configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	if timeout := cfg.Timeout(); timeout > 0 {
		client.SetTimeout(timeout)
	} else {
		client.SetTimeout(time.Second * 30)
	}

	return &Client{
		http:       client,
		baseURL:    cfg.BaseURL,
		siteID:     cfg.SiteID,
		scheduleID: cfg.ScheduleID,
	}
}

// DepartmentURL builds the schedule query for a department id.
func (c *Client) DepartmentURL(departmentID int) string {
	query := url.Values{}
	query.Set("sid", c.siteID)
	query.Set("a", "getProfSvids")
	query.Set("proftaflaID", c.scheduleID)
	query.Set("svidID", strconv.Itoa(departmentID))
	query.Set("notaVinnuToflu", "0")
	return c.baseURL + "?" + query.Encode()
}

// FetchDepartment returns the raw response body for one department.
func (c *Client) FetchDepartment(ctx context.Context, departmentID int) (string, error) {
	link := c.DepartmentURL(departmentID)

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return "", apperrors.NewUpstreamError("failed to fetch exam schedule", map[string]any{"department_id": departmentID}, err)
	}
	if res.IsError() {
		return "", apperrors.NewUpstreamError("unexpected upstream status", map[string]any{
			"department_id": departmentID,
			"status":        res.StatusCode(),
		}, nil)
	}

	return string(res.Body()), nil
}
