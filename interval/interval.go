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

// Package interval provides a struct representing a time interval, used for
// the temporal sharding of a CT Log.
package interval

import (
	"fmt"
	"math/rand"
	"time"
)

// Interval represents the interval [Start, End).
type Interval struct {
	Start, End time.Time
}

// New returns the interval [start, end), truncated to second precision.
//
// If both start and end are zero, New returns nil: a Log without a temporal
// interval accepts any NotAfter.  If only one of them is zero, or start is not
// before end, an error is returned.
func New(start, end time.Time) (*Interval, error) {
	if start.IsZero() && end.IsZero() {
		return nil, nil
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("either both or neither of start and end must be set. start = %s, end = %s", start, end)
	}
	i := &Interval{
		Start: start.Truncate(time.Second),
		End:   end.Truncate(time.Second),
	}
	if !i.Start.Before(i.End) {
		return nil, fmt.Errorf("start (%s) must be before end (%s)", i.Start, i.End)
	}
	return i, nil
}

// Contains reports whether t falls within [Start, End).
//
// A nil Interval contains every time.
func (i *Interval) Contains(t time.Time) bool {
	if i == nil {
		return true
	}
	return !t.Before(i.Start) && t.Before(i.End)
}

// String returns the interval in the form [Start, End).
func (i *Interval) String() string {
	if i == nil {
		return "[unbounded)"
	}
	return fmt.Sprintf("[%s, %s)", i.Start.UTC().Format(time.RFC3339), i.End.UTC().Format(time.RFC3339))
}

// RandomSecond returns a random second-precision time that falls within the
// Interval.
//
// If there is no second-precision time that falls in the Interval, the zero
// value time.Time will be returned.
// For example:
//    Start = 2019-03-25 00:00:00.1 +0000 UTC
//    End = 2019-03-25 00:00:00.9 +0000 UTC
//
// If the Interval is nil, or End is not after Start, the zero value time.Time
// will be returned.
func (i *Interval) RandomSecond() time.Time {
	if i == nil || !i.Start.Before(i.End) {
		return time.Time{}
	}

	// First second boundaries >= Start and >= End.
	start := i.Start.Unix()
	if i.Start.Nanosecond() != 0 {
		start++
	}
	end := i.End.Unix()
	if i.End.Nanosecond() != 0 {
		end++
	}

	delta := end - start
	if delta == 0 {
		return time.Time{}
	}
	return time.Unix(start+rand.Int63n(delta), 0)
}
