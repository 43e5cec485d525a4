package brp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors for the two remote failure classes callers care about.
// Everything fatal wraps one of these so commands can branch with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("remote service unavailable")
)

// Client talks to a BRP Online ver3 API (the booking platform behind
// Friskis & Svettis and similar gym chains). Endpoints follow the public
// brponline flow: business units, group activities per day, login, and
// group-activity bookings per customer.
type Client struct {
	hc      *http.Client
	baseURL string
}

type BusinessUnit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Duration struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Slots struct {
	LeftToBook    int `json:"leftToBook"`
	InWaitingList int `json:"inWaitingList"`
}

// GroupActivity is one concrete scheduled class instance.
type GroupActivity struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Duration         Duration  `json:"duration"`
	Cancelled        bool      `json:"cancelled"`
	BookableEarliest time.Time `json:"bookableEarliest"`
	Slots            Slots     `json:"slots"`
}

// Authorization is the credential bundle returned by Login and passed
// through to booking-related endpoints.
type Authorization struct {
	Username    string `json:"username"`
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
}

type Booking struct {
	GroupActivity struct {
		ID int64 `json:"id"`
	} `json:"groupActivity"`
	Duration Duration `json:"duration"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BusinessUnits lists every gym location known to the remote system.
func (c *Client) BusinessUnits(ctx context.Context) ([]BusinessUnit, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/businessunits", nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list business units: %w: %v", ErrUnavailable, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list business units: %w (status=%d)", ErrUnavailable, status)
	}
	var units []BusinessUnit
	if err := json.Unmarshal(body, &units); err != nil {
		return nil, fmt.Errorf("list business units: decode: %w", err)
	}
	return units, nil
}

// BusinessUnitByName finds a location by display name, case-insensitively.
// The error for a miss enumerates the available names so the user can fix
// their schedule entry without a second lookup.
func (c *Client) BusinessUnitByName(ctx context.Context, name string) (BusinessUnit, error) {
	units, err := c.BusinessUnits(ctx)
	if err != nil {
		return BusinessUnit{}, err
	}
	for _, u := range units {
		if strings.EqualFold(u.Name, name) {
			return u, nil
		}
	}
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, u.Name)
	}
	return BusinessUnit{}, fmt.Errorf("no location named %q; found: %s", name, strings.Join(names, ", "))
}

// GroupActivities lists the classes scheduled at a location on one calendar
// day. The day is interpreted in loc and sent to the remote system as the
// UTC window [00:00, 24:00) of that local day.
func (c *Client) GroupActivities(ctx context.Context, businessUnitID int64, day time.Time, loc *time.Location) ([]GroupActivity, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	q := url.Values{}
	q.Set("period.start", start.UTC().Format("2006-01-02T15:04:05.000Z"))
	q.Set("period.end", end.UTC().Format("2006-01-02T15:04:05.000Z"))

	path := fmt.Sprintf("/businessunits/%d/groupactivities", businessUnitID)
	status, body, err := c.do(ctx, http.MethodGet, path, q, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list group activities: %w: %v", ErrUnavailable, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list group activities: %w (status=%d)", ErrUnavailable, status)
	}
	var activities []GroupActivity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("list group activities: decode: %w", err)
	}
	return activities, nil
}

// Login exchanges credentials for an Authorization. A 401 maps to
// ErrUnauthorized so callers can tell bad credentials from a broken remote.
func (c *Client) Login(ctx context.Context, creds Credentials) (Authorization, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, nil)
	if err != nil {
		return Authorization{}, fmt.Errorf("login: %w: %v", ErrUnavailable, err)
	}
	switch status {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return Authorization{}, fmt.Errorf("login: %w", ErrUnauthorized)
	default:
		return Authorization{}, fmt.Errorf("login: %w (status=%d)", ErrUnavailable, status)
	}
	var auth Authorization
	if err := json.Unmarshal(body, &auth); err != nil {
		return Authorization{}, fmt.Errorf("login: decode: %w", err)
	}
	return auth, nil
}

// Bookings lists the customer's existing group-activity bookings.
func (c *Client) Bookings(ctx context.Context, auth Authorization) ([]Booking, error) {
	path := fmt.Sprintf("/customers/%s/bookings/groupactivities", url.PathEscape(auth.Username))
	status, body, err := c.do(ctx, http.MethodGet, path, nil, nil, &auth)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w: %v", ErrUnavailable, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list bookings: %w (status=%d)", ErrUnavailable, status)
	}
	var bookings []Booking
	if err := json.Unmarshal(body, &bookings); err != nil {
		return nil, fmt.Errorf("list bookings: decode: %w", err)
	}
	return bookings, nil
}

type bookRequest struct {
	GroupActivity    int64 `json:"groupActivity"`
	AllowWaitingList bool  `json:"allowWaitingList"`
}

// Book submits a booking for the activity. The remote answers 201 with the
// created booking on success; any other status means the submission was
// rejected and Book returns (nil, nil) so the caller treats it as a no-op.
func (c *Client) Book(ctx context.Context, activity GroupActivity, auth Authorization) (*Booking, error) {
	path := fmt.Sprintf("/customers/%s/bookings/groupactivities", url.PathEscape(auth.Username))
	req := bookRequest{GroupActivity: activity.ID, AllowWaitingList: false}
	status, body, err := c.do(ctx, http.MethodPost, path, nil, req, &auth)
	if err != nil {
		return nil, fmt.Errorf("book: %w: %v", ErrUnavailable, err)
	}
	if status != http.StatusCreated {
		return nil, nil
	}
	var booking Booking
	if err := json.Unmarshal(body, &booking); err != nil {
		return nil, fmt.Errorf("book: decode: %w", err)
	}
	return &booking, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, reqBody any, auth *Authorization) (int, []byte, error) {
	var body io.Reader
	if reqBody != nil {
		jb, err := json.Marshal(reqBody)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(jb)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if reqBody != nil {
		req.Header.Set("content-type", "application/json")
	}
	if auth != nil {
		req.Header.Set("authorization", fmt.Sprintf("%s %s", auth.TokenType, auth.AccessToken))
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}
