package schema

import (
	"fmt"
	"io"
	"net/http"
)

// Fetcher retrieves remote reference targets. Compile accepts a
// custom one so tests can stub network access.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// HTTPFetcher performs a blocking GET for remote references.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(url string) ([]byte, error)

func (f FetcherFunc) Fetch(url string) ([]byte, error) {
	return f(url)
}
