// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package models

// BatchResult contains the outcome of consuming one batch
type BatchResult struct {
	// EmittedCount is how many documents were handed to the sink
	EmittedCount int64

	// FailedCount is how many records were skipped because their payload
	// could not be decoded
	FailedCount int64

	// Continued is whether a continuation was published for an
	// interrupted record
	Continued bool

	// DecodeErrors holds the per-record decode failures, wrapped with the
	// record's position and sequence number
	DecodeErrors []error
}

// Total returns the number of records that produced a terminal outcome
func (r *BatchResult) Total() int64 {
	return r.EmittedCount + r.FailedCount
}

// Append merges another result into a copy of the source one and returns
// the resultant struct
func (r *BatchResult) Append(nr *BatchResult) *BatchResult {
	rC := *r

	if nr != nil {
		rC.EmittedCount += nr.EmittedCount
		rC.FailedCount += nr.FailedCount
		rC.Continued = rC.Continued || nr.Continued
		rC.DecodeErrors = append(rC.DecodeErrors, nr.DecodeErrors...)
	}

	return &rC
}

// TargetWriteResult contains the counts from a sink write operation
type TargetWriteResult struct {
	SentCount   int64
	FailedCount int64

	// Sent holds the documents accepted by the sink
	Sent []*Document

	// Failed holds the documents the sink rejected
	Failed []*Document
}

// NewTargetWriteResult builds a result structure to return from a sink
// write attempt
func NewTargetWriteResult(sent []*Document, failed []*Document) *TargetWriteResult {
	return &TargetWriteResult{
		SentCount:   int64(len(sent)),
		FailedCount: int64(len(failed)),
		Sent:        sent,
		Failed:      failed,
	}
}

// Total returns the sum of sent and failed documents
func (wr *TargetWriteResult) Total() int64 {
	return wr.SentCount + wr.FailedCount
}

// Append will add another write result to the source one to allow for
// result concatenation and then return the resultant struct
func (wr *TargetWriteResult) Append(nwr *TargetWriteResult) *TargetWriteResult {
	wrC := *wr

	if nwr != nil {
		wrC.SentCount += nwr.SentCount
		wrC.FailedCount += nwr.FailedCount
		wrC.Sent = append(wrC.Sent, nwr.Sent...)
		wrC.Failed = append(wrC.Failed, nwr.Failed...)
	}

	return &wrC
}
