// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sequencer moves Pending entries of a log store to Logged.  It stands
// in for the component that integrates entries into the Log's Merkle tree, and
// does not build a tree itself.
package sequencer

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/ctfrontend/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sequenced = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ctfrontend",
	Name:      "sequenced_total",
	Help:      "Entries marked as logged, by log.",
}, []string{"log"})

// PendingFunc returns the keys of entries that are still Pending.
type PendingFunc func(ctx context.Context) ([][]byte, error)

// Sequencer marks the entries listed by a PendingFunc as Logged.
type Sequencer struct {
	name      string
	pending   PendingFunc
	finalizer storage.Finalizer
}

// New returns a Sequencer for the named Log.
func New(name string, pending PendingFunc, finalizer storage.Finalizer) *Sequencer {
	return &Sequencer{name: name, pending: pending, finalizer: finalizer}
}

// RunOnce marks every currently Pending entry as Logged, and returns how many
// it marked.  It stops at the first error.
func (s *Sequencer) RunOnce(ctx context.Context) (int, error) {
	keys, err := s.pending(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing pending entries: %s", err)
	}
	for i, k := range keys {
		if err := s.finalizer.MarkLogged(ctx, k); err != nil {
			return i, fmt.Errorf("MarkLogged(%x): %s", k, err)
		}
		sequenced.WithLabelValues(s.name).Inc()
	}
	return len(keys), nil
}

// Run calls RunOnce immediately and then every period, until ctx is done.
func (s *Sequencer) Run(ctx context.Context, period time.Duration) {
	run := func() {
		n, err := s.RunOnce(ctx)
		if err != nil {
			glog.Errorf("%s: sequencer: %s", s.name, err)
		}
		if n > 0 {
			glog.V(1).Infof("%s: sequencer: marked %d entries as logged", s.name, n)
		}
	}

	run()
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			run()
		case <-ctx.Done():
			return
		}
	}
}
