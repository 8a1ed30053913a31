// Package linkcheck verifies that configured reference links still
// resolve, so generated documents do not ship dead footnotes.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"resty.dev/v3"
)

const requestTimeout = 10 * time.Second

// Result is the outcome of checking one reference link.
type Result struct {
	Name   string
	URL    string
	Status string
	OK     bool
}

// Check probes every link with a HEAD request, falling back to GET for
// servers that reject HEAD. Results come back sorted by link name.
func Check(ctx context.Context, links map[string]string, tracker *progress.Tracker) []Result {
	client := resty.New().SetTimeout(requestTimeout)
	defer func() { _ = client.Close() }()

	names := make([]string, 0, len(links))
	for name := range links {
		names = append(names, name)
	}

	sort.Strings(names)

	results := make([]Result, 0, len(names))

	for _, name := range names {
		url := links[name]
		results = append(results, checkOne(ctx, client, name, url))

		if tracker != nil {
			tracker.Increment(1)
		}
	}

	return results
}

func checkOne(ctx context.Context, client *resty.Client, name, url string) Result {
	request := client.R().SetContext(ctx)

	response, err := request.Head(url)
	if err != nil || response.StatusCode() == http.StatusMethodNotAllowed {
		response, err = client.R().SetContext(ctx).Get(url)
	}

	if err != nil {
		return Result{Name: name, URL: url, Status: err.Error()}
	}

	ok := response.StatusCode() >= http.StatusOK &&
		response.StatusCode() < http.StatusBadRequest

	return Result{
		Name:   name,
		URL:    url,
		Status: fmt.Sprintf("%d %s", response.StatusCode(), http.StatusText(response.StatusCode())),
		OK:     ok,
	}
}
