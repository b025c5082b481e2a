// Package database fetches airfoil coordinate files from the UIUC airfoil
// coordinate database.
//
// The database is a static web directory of .dat files in two common
// layouts (Selig and Lednicer); see [ParseDat]. Responses are cached
// through a [cache.Cache] so repeated meshing runs do not re-download, and
// transient HTTP failures are retried with exponential backoff.
package database

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cassyr/airfoil2d/pkg/cache"
	"github.com/cassyr/airfoil2d/pkg/errors"
	"github.com/cassyr/airfoil2d/pkg/geometry"
	"github.com/cassyr/airfoil2d/pkg/httputil"
)

// DefaultBaseURL is the UIUC airfoil coordinate database root.
const DefaultBaseURL = "https://m-selig.ae.illinois.edu/ads"

const (
	httpTimeout = 10 * time.Second

	// Retry budget for one fetch against the UIUC server.
	fetchAttempts   = 3
	fetchRetryDelay = time.Second
)

var coordHrefRE = regexp.MustCompile(`href="coord/([^"]+)\.dat"`)

// Client provides access to the airfoil coordinate database. It handles
// HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// NewClient creates a database client with the given cache backend. Pass a
// [cache.NullCache] to disable caching. ttl controls how long downloaded
// files and listings stay fresh.
func NewClient(backend cache.Cache, ttl time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		ttl:     ttl,
		baseURL: DefaultBaseURL,
	}
}

// NewClientURL is NewClient against a non-default database root, used by
// tests and mirrors.
func NewClientURL(backend cache.Cache, ttl time.Duration, baseURL string) *Client {
	c := NewClient(backend, ttl)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// ListNames returns the sorted names of every profile in the database.
//
// If refresh is true the cache is bypassed and the listing is fetched
// fresh.
func (c *Client) ListNames(ctx context.Context, refresh bool) ([]string, error) {
	page, err := c.cached(ctx, cache.Key("uiuc-list", c.baseURL), refresh, func() ([]byte, error) {
		return c.get(ctx, c.baseURL+"/coord_database.html")
	})
	if err != nil {
		return nil, err
	}

	matches := coordHrefRE.FindAllStringSubmatch(string(page), -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// FetchPoints downloads and parses the coordinate file of the named
// profile. Names are case-insensitive and match the listing from
// [Client.ListNames].
//
// Returns a PROFILE_NOT_FOUND error when the database has no such profile.
func (c *Client) FetchPoints(ctx context.Context, name string, refresh bool) ([]geometry.Point, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "profile name is empty")
	}

	url := fmt.Sprintf("%s/coord/%s.dat", c.baseURL, name)
	data, err := c.cached(ctx, cache.Key("uiuc-dat", url), refresh, func() ([]byte, error) {
		return c.get(ctx, url)
	})
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeNotFound {
			return nil, errors.New(errors.ErrCodeProfileNotFound,
				"profile %q is not in the airfoil database", name)
		}
		return nil, err
	}

	pts, err := ParseDat(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err,
			"parsing coordinate file for %q", name)
	}
	return pts, nil
}

// cached returns the cached bytes for key or fetches, stores and returns
// them. refresh bypasses the cache read but still updates it.
func (c *Client) cached(ctx context.Context, key string, refresh bool, fetch func() ([]byte, error)) ([]byte, error) {
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			return data, nil
		}
	}

	var data []byte
	err := httputil.Retry(ctx, fetchAttempts, fetchRetryDelay, func() error {
		var err error
		data, err = fetch()
		return err
	})
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, data, c.ttl)
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.Transient{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "requesting %s", url),
		}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "resource not found")
	case code >= 500:
		return &httputil.Transient{
			Err: errors.New(errors.ErrCodeNetwork, "server error: status %d", code),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
