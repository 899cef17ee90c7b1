package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// Releases maps tag names to releases for GetReleaseByTag
	Releases map[string]*github.RepositoryRelease
	// PRs maps PR numbers to PR data
	PRs map[int]*github.PullRequest
	// Comments maps PR numbers to their discussion comments
	Comments map[int][]*github.IssueComment
	// Commits maps PR numbers to their commits
	Commits map[int][]*github.RepositoryCommit
	// StatusOverrides maps a request path to a status code returned instead of data
	StatusOverrides map[string]int
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	mu       sync.Mutex
	requests []string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Releases:        make(map[string]*github.RepositoryRelease),
		PRs:             make(map[int]*github.PullRequest),
		Comments:        make(map[int][]*github.IssueComment),
		Commits:         make(map[int][]*github.RepositoryCommit),
		StatusOverrides: make(map[string]int),
		Owner:           "owner",
		Repo:            "repo",
	}
}

// Requests returns the request URIs received so far, in order
func (c *MockGitHubServerConfig) Requests() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.requests...)
}

func (c *MockGitHubServerConfig) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, r.URL.RequestURI())
}

// NewMockGitHubServer creates an httptest server that mocks GitHub API endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	base := "/repos/" + config.Owner + "/" + config.Repo
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+base+"/releases/tags/{tag}", func(w http.ResponseWriter, r *http.Request) {
		release, ok := config.Releases[r.PathValue("tag")]
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, release)
	})

	mux.HandleFunc("GET "+base+"/pulls/{number}", func(w http.ResponseWriter, r *http.Request) {
		pr, ok := config.PRs[pathNumber(r)]
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, pr)
	})

	mux.HandleFunc("GET "+base+"/issues/{number}/comments", func(w http.ResponseWriter, r *http.Request) {
		number := pathNumber(r)
		if _, ok := config.PRs[number]; !ok {
			writeNotFound(w)
			return
		}
		writePage(w, r, config.Comments[number])
	})

	mux.HandleFunc("GET "+base+"/pulls/{number}/commits", func(w http.ResponseWriter, r *http.Request) {
		number := pathNumber(r)
		if _, ok := config.PRs[number]; !ok {
			writeNotFound(w)
			return
		}
		writePage(w, r, config.Commits[number])
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		config.record(r)
		if status, ok := config.StatusOverrides[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": http.StatusText(status)})
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

// NewMockGitHubClient creates a GitHub client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client, config.Owner, config.Repo
}

func pathNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		return 0
	}
	return n
}

// writePage serves one page of items, honouring page/per_page and emitting
// a Link header when more pages follow
func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = 30
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	start := min((page-1)*perPage, len(items))
	end := min(start+perPage, len(items))
	if end < len(items) {
		next := *r.URL
		q := next.Query()
		q.Set("page", strconv.Itoa(page+1))
		q.Set("per_page", strconv.Itoa(perPage))
		next.RawQuery = q.Encode()
		w.Header().Set("Link", fmt.Sprintf(`<http://%s%s>; rel="next"`, r.Host, next.RequestURI()))
	}

	pageItems := items[start:end]
	if pageItems == nil {
		pageItems = []T{}
	}
	writeJSON(w, pageItems)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
}
