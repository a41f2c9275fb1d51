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

package submission

import "fmt"

// Status is the outcome of validating a submission.
type Status int

// Status values.
const (
	OK Status = iota
	EmptySubmission
	InvalidPEMEncodedChain
	SubmissionTooLong
	InvalidCertificateChain
	UnknownRoot
	PrecertChainNotWellFormed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case EmptySubmission:
		return "EMPTY_SUBMISSION"
	case InvalidPEMEncodedChain:
		return "INVALID_PEM_ENCODED_CHAIN"
	case SubmissionTooLong:
		return "SUBMISSION_TOO_LONG"
	case InvalidCertificateChain:
		return "INVALID_CERTIFICATE_CHAIN"
	case UnknownRoot:
		return "UNKNOWN_ROOT"
	case PrecertChainNotWellFormed:
		return "PRECERT_CHAIN_NOT_WELL_FORMED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
