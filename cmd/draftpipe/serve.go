package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	pipehttp "github.com/pkorzen/draftpipe/http"
)

// Run executes the serve command: start the JSON job server and block
// until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := &pipehttp.Server{
		Pipeline:  deps.Pipeline,
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Generator: deps.Generator,
		Publisher: deps.Publisher,
		Logger:    deps.Logger,
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Fprintf(deps.Stdout, "listening on %s\n", c.Addr)

	select {
	case <-deps.Ctx.Done():
		return srv.Close()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
