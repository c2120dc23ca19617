package dict

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient()
	c.SetBaseURL(srv.URL + "/")
	return c, srv
}

func TestDefineSuccess(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("expected path /hello, got %q", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"word": "hello", "meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "a greeting"}]}]},
			{"word": "hello", "meanings": []}
		]`)
	})
	defer srv.Close()

	entries, err := c.Define("hello")
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Word != "hello" {
		t.Errorf("expected word hello, got %q", entries[0].Word)
	}
	if len(entries[0].Meanings) != 1 {
		t.Errorf("expected 1 meaning, got %d", len(entries[0].Meanings))
	}
}

func TestDefinePathEscaping(t *testing.T) {
	var gotPath string
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, `[]`)
	})
	defer srv.Close()

	if _, err := c.Define("ice cream"); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if gotPath != "/ice%20cream" {
		t.Errorf("expected escaped path /ice%%20cream, got %q", gotPath)
	}
}

func TestDefineNotFound(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		fmt.Fprint(w, `{"title": "No Definitions Found", "message": "Sorry pal, we couldn't find definitions for the word you were looking for.", "resolution": "You can try the search again at later time or head to the web instead."}`)
	})
	defer srv.Close()

	_, err := c.Define("qwzx")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != 404 {
		t.Errorf("expected status 404, got %d", apiErr.Status)
	}
	if !strings.HasPrefix(apiErr.Message, "No Definitions Found:") {
		t.Errorf("expected message to start with title, got %q", apiErr.Message)
	}
}

func TestDefineErrorBodyNotAnObject(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		fmt.Fprint(w, `<html>internal error</html>`)
	})
	defer srv.Close()

	_, err := c.Define("cat")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Error 500: Unable to fetch definition." {
		t.Errorf("expected generic message, got %q", apiErr.Message)
	}
}

func TestDefineMalformedResponse(t *testing.T) {
	cases := map[string]string{
		"object body":        `{"word": "cat"}`,
		"non-object element": `[{"word": "cat"}, "oops"]`,
		"not json":           `hello`,
	}

	for name, body := range cases {
		c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		})

		_, err := c.Define("cat")
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("%s: expected ErrMalformedResponse, got %v", name, err)
		}
		srv.Close()
	}
}

func TestDefineTimeout(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `[]`)
	})
	defer srv.Close()
	c.SetTimeout(20 * time.Millisecond)

	_, err := c.Define("slow")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestDefineOffline(t *testing.T) {
	c := NewClient()
	c.SetOnlineCheck(func() bool { return false })

	_, err := c.Define("anything")
	if !errors.Is(err, ErrNoConnection) {
		t.Errorf("expected ErrNoConnection, got %v", err)
	}
}

func TestDefineNoRoute(t *testing.T) {
	c := NewClient()
	// Closed server: connection refused rather than a timeout.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c.SetBaseURL(srv.URL + "/")
	srv.Close()

	_, err := c.Define("cat")
	if !errors.Is(err, ErrNoConnection) {
		t.Errorf("expected ErrNoConnection, got %v", err)
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrNoConnection, "No internet connection."},
		{fmt.Errorf("%w: dial tcp", ErrNoConnection), "No internet connection."},
		{ErrTimeout, "The request timed out. Please try again."},
		{ErrMalformedResponse, "Unexpected response format."},
		{&APIError{Status: 404, Message: "No Definitions Found: sorry."}, "No Definitions Found: sorry."},
	}

	for _, tc := range cases {
		if got := UserMessage(tc.err); got != tc.want {
			t.Errorf("UserMessage(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
