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

package frontend

import (
	"fmt"

	"github.com/google/ctfrontend/submission"
)

// SubmitResult is the outcome of queueing a submission.
type SubmitResult int

// SubmitResult values.
const (
	New SubmitResult = iota
	Logged
	Pending
	BadPEMFormat
	SubmissionTooLong
	CertificateVerifyError
	PrecertChainNotWellFormed
	UnknownError
)

func (r SubmitResult) String() string {
	switch r {
	case New:
		return "new submission accepted"
	case Logged:
		return "submission already logged"
	case Pending:
		return "submission already pending"
	case BadPEMFormat:
		return "not a valid PEM-encoded chain"
	case SubmissionTooLong:
		return "DER-encoded certificate chain length exceeds allowed limit"
	case CertificateVerifyError:
		return "could not verify certificate chain"
	case PrecertChainNotWellFormed:
		return "precert chain not well-formed"
	case UnknownError:
		return "unknown error"
	default:
		return fmt.Sprintf("SubmitResult(%d)", int(r))
	}
}

// label returns the metric label for r.
func (r SubmitResult) label() string {
	switch r {
	case New:
		return "new"
	case Logged:
		return "logged"
	case Pending:
		return "pending"
	case BadPEMFormat:
		return "bad_pem_format"
	case SubmissionTooLong:
		return "submission_too_long"
	case CertificateVerifyError:
		return "certificate_verify_error"
	case PrecertChainNotWellFormed:
		return "precert_chain_not_well_formed"
	default:
		return "unknown_error"
	}
}

// GetSubmitError maps a failed submission.Status to the SubmitResult returned
// to the caller.  It panics if status is submission.OK or not a known status:
// both mean the caller has a bug.
func GetSubmitError(status submission.Status) SubmitResult {
	switch status {
	case submission.EmptySubmission, submission.InvalidPEMEncodedChain:
		return BadPEMFormat
	case submission.SubmissionTooLong:
		return SubmissionTooLong
	case submission.InvalidCertificateChain, submission.UnknownRoot:
		return CertificateVerifyError
	case submission.PrecertChainNotWellFormed:
		return PrecertChainNotWellFormed
	case submission.OK:
		panic("GetSubmitError called with OK")
	default:
		panic(fmt.Sprintf("GetSubmitError: unhandled submission status %s", status))
	}
}
