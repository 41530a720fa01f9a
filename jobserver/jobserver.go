// Package jobserver implements the round-robin worker pool that performs
// asset rasterization off the main thread (spec §4.E), grounded on
// original_source/job_server.rs and generalized to carry an optional
// dependency rasterization per job (needed for BlurredGlyph).
package jobserver

import (
	"log"
	"runtime"

	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/distfield"
)

// job is the message sent to a worker: either a rasterization request or a
// shutdown signal (original_source/job_server.rs's Job::RasterizeAsset /
// Job::Exit enum).
type job struct {
	description assets.Description
	input       *assets.Rasterization
	response    chan assets.Rasterization
	exit        bool
}

// Server owns N worker goroutines and dispatches to them round-robin (spec
// §4.E). It implements assets.JobServer.
type Server struct {
	workers []chan job
	next    uint32
}

// New starts a Server with workerCount workers, each with its own
// distfield.FreetypeGlyphSource font cache (spec §4.E "thread-local
// AssetContext"). workerCount <= 0 defaults to runtime.NumCPU(), the
// "logical CPU count" spec §4.E specifies.
func New(workerCount int) *Server {

	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	s := &Server{workers: make([]chan job, workerCount)}
	for i := range s.workers {
		ch := make(chan job)
		s.workers[i] = ch
		go workerMain(i, ch)
	}
	return s
}

// RasterizeAsset submits description (with optional dependency input) to
// the next worker in round-robin order and returns the response channel
// immediately, without waiting for the result (spec §4.E).
func (s *Server) RasterizeAsset(description assets.Description, input *assets.Rasterization) <-chan assets.Rasterization {

	response := make(chan assets.Rasterization, 1)
	s.workers[s.next] <- job{description: description, input: input, response: response}
	s.next = (s.next + 1) % uint32(len(s.workers))
	return response
}

// Stop sends every worker an Exit message and returns once all have been
// sent (spec §4.E "Shutdown: an Exit message breaks the loop").
func (s *Server) Stop() {
	for _, w := range s.workers {
		w <- job{exit: true}
	}
}

func workerMain(id int, jobs chan job) {

	glyphs := distfield.NewFreetypeGlyphSource()

	for j := range jobs {
		if j.exit {
			log.Printf("jobserver: worker %d exiting", id)
			return
		}

		raster, err := j.description.Rasterize(glyphs, j.input)
		if err != nil {
			// spec §7: FontLoadError (or InvalidStateTransition for a
			// BlurredGlyph job with no input) is fatal in core. A worker has no supervisor to report to
			// other than crashing the process, matching the "halt frame
			// rendering" policy at the worst case.
			panic(err)
		}

		j.response <- raster
	}
}
