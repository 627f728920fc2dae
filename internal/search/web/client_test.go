package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/retry"
)

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestRankOrdersPortalsFirst(t *testing.T) {
	in := []SearchResult{
		{URL: "https://blog.example.com/a"},
		{URL: "https://www.nobroker.in/x"},
		{URL: "https://www.magicbricks.com/y"},
		{URL: "https://news.example.com/b"},
		{URL: "https://www.99acres.com/z"},
		{URL: "https://housing.com/w"},
	}

	got := Rank(in)
	urls := make([]string, len(got))
	for i, r := range got {
		urls[i] = r.URL
	}
	assert.Equal(t, []string{
		"https://www.99acres.com/z",
		"https://www.magicbricks.com/y",
		"https://housing.com/w",
		"https://www.nobroker.in/x",
		"https://blog.example.com/a",
		"https://news.example.com/b",
	}, urls)
	assert.Equal(t, "https://blog.example.com/a", in[0].URL, "input untouched")
}

func TestSearchWithSerpAPI(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		assert.Equal(t, QueryFor("Pattom"), r.URL.Query().Get("q"))

		organic := make([]map[string]string, 0, 14)
		for i := 0; i < 12; i++ {
			organic = append(organic, map[string]string{
				"title": fmt.Sprintf("result %d", i),
				"link":  fmt.Sprintf("https://site%d.example.com", i),
			})
		}
		organic = append(organic, map[string]string{"title": "olx", "link": "https://www.olx.in/plot"})
		organic = append(organic, map[string]string{"title": "no link"})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"organic_results": organic}) //nolint:errcheck
	}))
	defer ts.Close()

	c := NewClient("key", time.Second, WithEndpoints(ts.URL, ""), WithRetry(fastRetry()))
	results, err := c.Search(context.Background(), QueryFor("Pattom"), 25)
	require.NoError(t, err)

	require.Len(t, results, MaxResults)
	assert.Equal(t, "https://www.olx.in/plot", results[0].URL)
	assert.Equal(t, "result 0", results[1].Title)
}

func TestSearchPromotesPortalBeyondFirstPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("num"))

		organic := make([]map[string]string, 0, 20)
		for i := 0; i < 19; i++ {
			organic = append(organic, map[string]string{
				"title": fmt.Sprintf("result %d", i),
				"link":  fmt.Sprintf("https://site%d.example.com", i),
			})
		}
		organic = append(organic, map[string]string{"title": "plot", "link": "https://www.magicbricks.com/plot"})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"organic_results": organic}) //nolint:errcheck
	}))
	defer ts.Close()

	memo := &mapMemo{data: map[string][]byte{}}
	c := NewClient("key", time.Second, WithEndpoints(ts.URL, ""), WithRetry(fastRetry()), WithMemo(memo, time.Hour))

	few, err := c.Search(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, few, 3)
	assert.Equal(t, "https://www.magicbricks.com/plot", few[0].URL)

	more, err := c.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, more, MaxResults)
	assert.Equal(t, "https://www.magicbricks.com/plot", more[0].URL)
	assert.Equal(t, "result 8", more[9].Title)
	assert.Equal(t, 1, memo.sets)
}

func TestSearchWithHTMLFallback(t *testing.T) {
	page := `<html><body>
<div class="g"><a href="https://example.com/news"><h3>Land rates rise</h3></a><div class="VwiC3b">Rs 9 lakh per cent</div></div>
<div class="g"><a href="https://www.magicbricks.com/plots"><h3>Plots in Kowdiar</h3></a><div class="VwiC3b">25 Lakhs/cent</div></div>
<div class="g"><h3>No link here</h3></div>
</body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page)) //nolint:errcheck
	}))
	defer ts.Close()

	c := NewClient("", time.Second, WithEndpoints("", ts.URL), WithRetry(fastRetry()))
	results, err := c.Search(context.Background(), "q", 5)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Plots in Kowdiar", results[0].Title)
	assert.Equal(t, "25 Lakhs/cent", results[0].Snippet)
	assert.Equal(t, "https://example.com/news", results[1].URL)
}

func TestSearchRetriesOnceOnServerError(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"organic_results":[{"title":"t","link":"https://www.99acres.com/a"}]}`)) //nolint:errcheck
	}))
	defer ts.Close()

	c := NewClient("key", time.Second, WithEndpoints(ts.URL, ""), WithRetry(fastRetry()))
	results, err := c.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(2), hits.Load())
}

func TestSearchDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient("bad", time.Second, WithEndpoints(ts.URL, ""), WithRetry(fastRetry()))
	_, err := c.Search(context.Background(), "q", 10)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

type mapMemo struct {
	data map[string][]byte
	sets int
}

func (m *mapMemo) SetSearch(_ context.Context, query string, results interface{}, _ time.Duration) error {
	b, err := json.Marshal(results)
	if err != nil {
		return err
	}
	m.data[query] = b
	m.sets++
	return nil
}

func (m *mapMemo) GetSearch(_ context.Context, query string, results interface{}) (bool, error) {
	b, ok := m.data[query]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, results)
}

func TestSearchUsesMemo(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"organic_results":[{"title":"t","link":"https://www.housing.com/a","snippet":"s"}]}`)) //nolint:errcheck
	}))
	defer ts.Close()

	memo := &mapMemo{data: map[string][]byte{}}
	c := NewClient("key", time.Second, WithEndpoints(ts.URL, ""), WithMemo(memo, time.Hour))

	first, err := c.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	second, err := c.Search(context.Background(), "q", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, memo.sets)
}
