package tourapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	DefaultBaseURL = "https://apis.data.go.kr/B551011/KorService2"
	mobileOS       = "ETC"
	mobileApp      = "NamdoBot"
	successCode    = "0000"

	mainAreasKey = "main_areas"
)

var (
	ErrUnavailable       = errors.New("tour api unavailable")
	ErrMissingServiceKey = errors.New("tour api service key is not configured")
	ErrUnknownArea       = errors.New("unknown area name")
)

// APIError is a well-formed response carrying a non-success result code.
type APIError struct {
	Endpoint string
	Code     string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tour api %s: %s %s", e.Endpoint, e.Code, e.Message)
}

type Config struct {
	BaseURL    string
	ServiceKey string
	LegacyTLS  bool
	Timeout    time.Duration
	PageSize   int
	CacheTTL   time.Duration
	// OnRequest is called after every HTTP round trip.
	OnRequest func(endpoint string, err error, elapsed time.Duration)
}

type Client struct {
	baseURL    string
	serviceKey string
	pageSize   int
	http       *http.Client
	areas      *cache.Cache
	breaker    *gobreaker.CircuitBreaker[[]byte]
	onRequest  func(endpoint string, err error, elapsed time.Duration)
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 1000
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.LegacyTLS {
		transport.TLSClientConfig = legacyTLSConfig()
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tourapi",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			return err == nil || errors.As(err, &apiErr) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[WARN] circuit %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		pageSize:   cfg.PageSize,
		http:       &http.Client{Timeout: cfg.Timeout, Transport: transport},
		areas:      cache.New(cfg.CacheTTL, time.Hour),
		breaker:    breaker,
		onRequest:  cfg.OnRequest,
	}
}

// legacyTLSConfig re-enables the CBC cipher suites the data.go.kr gateway
// still negotiates.
func legacyTLSConfig() *tls.Config {
	var suites []uint16
	for _, cs := range tls.CipherSuites() {
		suites = append(suites, cs.ID)
	}
	for _, cs := range tls.InsecureCipherSuites() {
		suites = append(suites, cs.ID)
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		CipherSuites: suites,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.serviceKey == "" {
		return nil, ErrMissingServiceKey
	}

	params.Set("serviceKey", c.serviceKey)
	params.Set("MobileOS", mobileOS)
	params.Set("MobileApp", mobileApp)
	params.Set("_type", "json")

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, endpoint, resp.StatusCode)
		}
		return data, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if c.onRequest != nil {
		c.onRequest(endpoint, err, time.Since(start))
	}
	return body, err
}

func fetch[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (*envelope[T], error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{Endpoint: endpoint, Code: "DECODE", Message: err.Error()}
	}

	code := env.Response.Header.ResultCode
	if code != "" && code != successCode {
		return nil, &APIError{Endpoint: endpoint, Code: code, Message: env.Response.Header.ResultMsg}
	}
	return &env, nil
}

// AreaCodes lists the provinces, or the districts of parent when it is set.
func (c *Client) AreaCodes(ctx context.Context, parent string) ([]AreaCode, error) {
	params := url.Values{}
	params.Set("numOfRows", "100")
	params.Set("pageNo", "1")
	if parent != "" {
		params.Set("areaCode", parent)
	}

	env, err := fetch[AreaCode](ctx, c, "areaCode2", params)
	if err != nil {
		return nil, err
	}
	return env.Response.Body.Items, nil
}

// ResolveArea converts a province name and optional district name into
// area codes. Lookups are cached per province.
func (c *Client) ResolveArea(ctx context.Context, region, sigungu string) (string, string, error) {
	provinces, err := c.namedCodes(ctx, mainAreasKey, "")
	if err != nil {
		return "", "", err
	}

	areaCode, ok := provinces[region]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownArea, region)
	}
	if sigungu == "" {
		return areaCode, "", nil
	}

	districts, err := c.namedCodes(ctx, "sigungu_"+areaCode, areaCode)
	if err != nil {
		return "", "", err
	}
	sigunguCode, ok := districts[sigungu]
	if !ok {
		return "", "", fmt.Errorf("%w: %s %s", ErrUnknownArea, region, sigungu)
	}
	return areaCode, sigunguCode, nil
}

func (c *Client) namedCodes(ctx context.Context, key, parent string) (map[string]string, error) {
	if cached, found := c.areas.Get(key); found {
		return cached.(map[string]string), nil
	}

	codes, err := c.AreaCodes(ctx, parent)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(codes))
	for _, ac := range codes {
		byName[ac.Name] = ac.Code
	}
	c.areas.Set(key, byName, cache.DefaultExpiration)
	return byName, nil
}

type FestivalQuery struct {
	AreaCode       string
	SigunguCode    string
	EventStartDate string
}

// SearchFestivals pages through searchFestival2 until totalCount items are
// collected.
func (c *Client) SearchFestivals(ctx context.Context, q FestivalQuery) ([]FestivalItem, error) {
	var all []FestivalItem
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("areaCode", q.AreaCode)
		params.Set("eventStartDate", q.EventStartDate)
		params.Set("numOfRows", strconv.Itoa(c.pageSize))
		params.Set("pageNo", strconv.Itoa(page))
		if q.SigunguCode != "" {
			params.Set("sigunguCode", q.SigunguCode)
		}

		env, err := fetch[FestivalItem](ctx, c, "searchFestival2", params)
		if err != nil {
			return nil, err
		}

		items := env.Response.Body.Items
		all = append(all, items...)
		if len(items) == 0 || len(all) >= env.Response.Body.TotalCount {
			return all, nil
		}
	}
}

func (c *Client) DetailCommon(ctx context.Context, contentID string) (*CommonDetail, error) {
	params := url.Values{}
	params.Set("contentId", contentID)
	return first[CommonDetail](ctx, c, "detailCommon2", params)
}

func (c *Client) DetailIntro(ctx context.Context, contentID, contentTypeID string) (*IntroDetail, error) {
	params := url.Values{}
	params.Set("contentId", contentID)
	params.Set("contentTypeId", contentTypeID)
	return first[IntroDetail](ctx, c, "detailIntro2", params)
}

// DetailPet returns nil when the festival has no pet information.
func (c *Client) DetailPet(ctx context.Context, contentID string) (*PetDetail, error) {
	params := url.Values{}
	params.Set("contentId", contentID)
	return first[PetDetail](ctx, c, "detailPetTour2", params)
}

func first[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (*T, error) {
	env, err := fetch[T](ctx, c, endpoint, params)
	if err != nil {
		return nil, err
	}
	if len(env.Response.Body.Items) == 0 {
		return nil, nil
	}
	item := env.Response.Body.Items[0]
	return &item, nil
}
