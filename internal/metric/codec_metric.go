// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	typeIDKey    = "type_id"
	operationKey = "operation"
)

// Operation names a codec operation in failure metrics
type Operation string

const (
	EncodeOperation      Operation = "encode"
	DecodeOperation      Operation = "decode"
	MaterializeOperation Operation = "materialize"
	ReadFieldsOperation  Operation = "read_fields"
)

// CodecMetric holds the codec instruments
type CodecMetric struct {
	// Specifies the total number of values encoded
	encodeCount metric.Int64Counter
	// Specifies the total number of values decoded
	decodeCount metric.Int64Counter
	// Specifies the total number of failed operations
	failureCount metric.Int64Counter
	// Specifies the size of encoded payloads in bytes
	payloadSize metric.Int64Histogram
}

// NewCodecMetric creates the codec instruments on meter
func NewCodecMetric(meter metric.Meter) (*CodecMetric, error) {
	codecMetric := new(CodecMetric)
	var err error
	if codecMetric.encodeCount, err = meter.Int64Counter(
		"serde_encode_count",
		metric.WithDescription("Total number of values encoded"),
	); err != nil {
		return nil, fmt.Errorf("failed to create encodeCount instrument, %w", err)
	}

	if codecMetric.decodeCount, err = meter.Int64Counter(
		"serde_decode_count",
		metric.WithDescription("Total number of values decoded"),
	); err != nil {
		return nil, fmt.Errorf("failed to create decodeCount instrument, %w", err)
	}

	if codecMetric.failureCount, err = meter.Int64Counter(
		"serde_failure_count",
		metric.WithDescription("Total number of failed codec operations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failureCount instrument, %w", err)
	}

	if codecMetric.payloadSize, err = meter.Int64Histogram(
		"serde_payload_size",
		metric.WithDescription("The size of encoded payloads"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create payloadSize instrument, %w", err)
	}

	return codecMetric, nil
}

// RecordEncode records a successful encode of size bytes
func (x *CodecMetric) RecordEncode(ctx context.Context, typeID int32, size int) {
	attrs := metric.WithAttributes(attribute.Int(typeIDKey, int(typeID)))
	x.encodeCount.Add(ctx, 1, attrs)
	x.payloadSize.Record(ctx, int64(size), attrs)
}

// RecordDecode records a successful decode
func (x *CodecMetric) RecordDecode(ctx context.Context, typeID int32) {
	x.decodeCount.Add(ctx, 1, metric.WithAttributes(attribute.Int(typeIDKey, int(typeID))))
}

// RecordFailure records a failed operation
func (x *CodecMetric) RecordFailure(ctx context.Context, operation Operation) {
	x.failureCount.Add(ctx, 1, metric.WithAttributes(attribute.String(operationKey, string(operation))))
}
