package registry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPHandler(t *testing.T) {
	as := require.New(t)

	m := newTestManager(t, NewMemoryDirectory(), nil)
	srv := httptest.NewServer(m.HTTPHandler())
	defer srv.Close()

	fetch := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path)
		as.NoError(err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		as.NoError(err)
		return resp.StatusCode, string(body)
	}

	status, _ := fetch("/graph")
	as.Equal(http.StatusNotFound, status)

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		_, err := m.RegisterNode(context.Background(), addr)
		as.NoError(err)
	}

	status, body := fetch("/nodes")
	as.Equal(http.StatusOK, status)
	as.Contains(body, "10.0.0.2:1")
	as.Contains(body, "(3 nodes in registration order)")

	status, body = fetch("/graph")
	as.Equal(http.StatusOK, status)
	as.Contains(body, "digraph")
	as.Equal(3, strings.Count(body, "->"))
}
