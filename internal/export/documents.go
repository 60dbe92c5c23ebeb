// Package export renders records as documents for a downstream embedding
// and retrieval stage.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"logsift/internal/domain"
)

// NotAvailable replaces fields a record does not carry.
const NotAvailable = "N/A"

// Document is one retrievable unit: the text to embed plus its metadata
type Document struct {
	PageContent string            `json:"page_content"`
	Metadata    map[string]string `json:"metadata"`
}

// metadataFields are the record fields copied into every document.
var metadataFields = []string{
	domain.FieldTimestamp,
	domain.FieldTestName,
	domain.FieldLevel,
	domain.FieldMessage,
	domain.FieldResult,
	domain.FieldTestSummary,
	domain.FieldWarningMessage,
	domain.FieldDurationMessage,
	domain.FieldStackTrace,
}

// Documents returns one document per record, in order.
func Documents(records []domain.Record) []Document {
	docs := make([]Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, NewDocument(rec))
	}
	return docs
}

// NewDocument renders a single record.
func NewDocument(rec domain.Record) Document {
	meta := make(map[string]string, len(metadataFields)+1)
	for _, field := range metadataFields {
		meta[field] = value(rec, field)
	}
	meta["kind"] = rec.Kind.String()

	content := fmt.Sprintf(
		"Timestamp: %s, Test Name: %s, Level: %s, Message: %s, Result: %s, Test Summary: %s, Warning: %s, Duration: %s, StackTrace: %s",
		meta[domain.FieldTimestamp],
		meta[domain.FieldTestName],
		meta[domain.FieldLevel],
		meta[domain.FieldMessage],
		meta[domain.FieldResult],
		meta[domain.FieldTestSummary],
		meta[domain.FieldWarningMessage],
		meta[domain.FieldDurationMessage],
		meta[domain.FieldStackTrace],
	)
	return Document{PageContent: content, Metadata: meta}
}

// WriteJSONL writes one JSON document per line.
func WriteJSONL(w io.Writer, docs []Document) error {
	enc := json.NewEncoder(w)
	for i, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("write document %d: %w", i, err)
		}
	}
	return nil
}

func value(rec domain.Record, field string) string {
	if field == domain.FieldStackTrace {
		if len(rec.StackTrace) == 0 {
			return NotAvailable
		}
		return strings.Join(rec.StackTrace, " | ")
	}
	v, ok := rec.Get(field)
	if !ok {
		return NotAvailable
	}
	return v
}
