package harness

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const httpListenerTimeout = time.Second * 10

// FixtureServer is a local web application served for the duration of a run, so that suites can
// run without an external site.
type FixtureServer struct {
	server *http.Server
	url    string
}

// ServeFixtureApp starts serving the handler on the given port (0 picks a free port) and returns
// once the listener answers requests.
func ServeFixtureApp(port int, handler http.Handler) (*FixtureServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "HEAD" {
				w.WriteHeader(200) // we use this to test whether our own listener is active yet
				return
			}
			handler.ServeHTTP(w, r)
		}),
		ReadHeaderTimeout: 10 * time.Second, // arbitrary but non-infinite timeout to avoid Slowloris Attack
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case err := <-serveErr:
			return nil, err
		case <-deadline.C:
			_ = server.Close()
			return nil, fmt.Errorf("could not detect own listener at %s", url)
		case <-ticker.C:
			if probe(url) == nil {
				return &FixtureServer{server: server, url: url}, nil
			}
		}
	}
}

func probe(url string) error {
	req, err := http.NewRequest("HEAD", url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// URL returns the server's base URL.
func (f *FixtureServer) URL() string { return f.url }

func (f *FixtureServer) Close() error {
	return f.server.Close()
}
