// Copyright 2019 Google LLC
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

package interval

import (
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"
)

func TestRandomSecond(t *testing.T) {
	tests := []struct {
		desc     string
		in       *Interval
		wantZero bool
	}{
		{
			desc:     "nil",
			in:       nil,
			wantZero: true,
		},
		{
			desc: "day",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2019, time.March, 26, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			desc: "second",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 1, 0, time.UTC),
			},
		},
		{
			desc: "one second boundary between",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 999999999, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 1, 1, time.UTC),
			},
		},
		{
			desc: "one second boundary between, start on second boundary",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 0, 1, time.UTC),
			},
		},
		{
			desc: "no second boundaries between",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 1, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 0, 999999999, time.UTC),
			},
			wantZero: true,
		},
		{
			desc: "no second boundaries between, end on second boundary",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 1, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 1, 0, time.UTC),
			},
			wantZero: true,
		},
		{
			desc: "equal",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
			},
			wantZero: true,
		},
		{
			desc: "end just before start",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 1, time.UTC),
				End:   time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
			},
			wantZero: true,
		},
		{
			desc: "end way before start",
			in: &Interval{
				Start: time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2019, time.March, 24, 0, 0, 0, 0, time.UTC),
			},
			wantZero: true,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got := test.in.RandomSecond()

			if test.wantZero {
				if !got.IsZero() {
					t.Fatalf("%v.RandomSecond() = %s, want %s (the zero time)", test.in, got, time.Time{})
				}
				return
			}

			if got.Before(test.in.Start) || !test.in.End.After(got) {
				t.Fatalf("%v.RandomSecond() = %s, want between [%s, %s)", test.in, got, test.in.Start, test.in.End)
			}
		})
	}
}

func TestNew(t *testing.T) {
	day := time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		desc       string
		start, end time.Time
		want       *Interval
		wantErr    bool
	}{
		{desc: "unbounded"},
		{
			desc:  "strip nanos",
			start: day.Add(1),
			end:   day.Add(24*time.Hour - 1),
			want:  &Interval{Start: day, End: day.Add(24*time.Hour - time.Second)},
		},
		{desc: "only start", start: day, wantErr: true},
		{desc: "only end", end: day, wantErr: true},
		{desc: "equal", start: day, end: day, wantErr: true},
		{desc: "equal after truncation", start: day, end: day.Add(time.Millisecond), wantErr: true},
		{desc: "reversed", start: day.Add(time.Hour), end: day, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, err := New(test.start, test.end)
			if gotErr := err != nil; gotErr != test.wantErr {
				t.Fatalf("New(%s, %s) = _, %v, want error %t", test.start, test.end, err, test.wantErr)
			}
			if test.wantErr {
				return
			}
			if diff := pretty.Compare(test.want, got); diff != "" {
				t.Errorf("New(%s, %s) diff (-want +got):\n%s", test.start, test.end, diff)
			}
		})
	}
}

func TestContains(t *testing.T) {
	i := &Interval{
		Start: time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	tests := []struct {
		desc string
		in   *Interval
		t    time.Time
		want bool
	}{
		{desc: "nil contains everything", t: time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), want: true},
		{desc: "start is included", in: i, t: i.Start, want: true},
		{desc: "middle", in: i, t: time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC), want: true},
		{desc: "end is excluded", in: i, t: i.End},
		{desc: "just before start", in: i, t: i.Start.Add(-time.Nanosecond)},
		{desc: "just before end", in: i, t: i.End.Add(-time.Nanosecond), want: true},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if got := test.in.Contains(test.t); got != test.want {
				t.Errorf("%s.Contains(%s) = %t, want %t", test.in, test.t, got, test.want)
			}
		})
	}
}
