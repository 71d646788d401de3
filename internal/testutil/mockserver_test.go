package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

func TestMockServer(t *testing.T) {
	ms := NewMockServer(JSONHandler(http.StatusOK, `{"status":"OK"}`))
	defer ms.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ms.URL+"/v1/places:autocomplete?key=k", strings.NewReader(`{"input":"kö"}`))
	AssertNil(t, err)
	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL is from httptest.Server (localhost)
	AssertNil(t, err)
	defer func() { _ = resp.Body.Close() }()

	AssertEqual(t, resp.StatusCode, http.StatusOK)
	AssertEqual(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	AssertNil(t, err)
	AssertEqual(t, string(body), `{"status":"OK"}`)

	AssertEqual(t, ms.RequestCount(), 1)
	last := ms.LastRequest()
	AssertTrue(t, last != nil)
	AssertEqual(t, last.Method, "POST")
	AssertEqual(t, last.Path, "/v1/places:autocomplete")
	AssertEqual(t, last.Query["key"][0], "k")
	AssertEqual(t, string(last.Body), `{"input":"kö"}`)
}

func TestMockServerConcurrentRequests(t *testing.T) {
	ms := NewMockServer(JSONHandler(http.StatusOK, `{}`))
	defer ms.Close()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ms.URL, nil)
			if err != nil {
				t.Error(err)
				return
			}
			resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL is from httptest.Server (localhost)
			if err != nil {
				t.Error(err)
				return
			}
			_ = resp.Body.Close()
		}()
	}
	wg.Wait()

	AssertEqual(t, ms.RequestCount(), 5)
}

func TestMockServerReset(t *testing.T) {
	ms := NewMockServer(JSONHandler(http.StatusOK, `{}`))
	defer ms.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ms.URL, nil)
	AssertNil(t, err)
	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL is from httptest.Server (localhost)
	AssertNil(t, err)
	_ = resp.Body.Close()

	AssertEqual(t, ms.RequestCount(), 1)

	ms.Reset()
	AssertEqual(t, ms.RequestCount(), 0)
	AssertTrue(t, ms.LastRequest() == nil)
}
