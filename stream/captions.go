// Package stream provides DynamoDB Streams handlers that keep the caption
// search table in sync with the posts collection.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/aws/aws-lambda-go/events"

	"github.com/openalms/openalms/store"
)

// minTermLength drops noise tokens ("a", "to") from the index.
const minTermLength = 3

// Handler processes posts-table stream events and maintains the caption
// search index.
type Handler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(s *store.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger,
	}
}

// HandleCaptionIndex processes DynamoDB stream events from the posts table,
// diffing each record's old and new caption term sets and updating the
// search table accordingly. Designed to be used as an AWS Lambda handler.
func (h *Handler) HandleCaptionIndex(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single posts-table stream record.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	switch record.EventName {
	case "INSERT", "MODIFY":
		return h.reindex(ctx, record)
	case "REMOVE":
		return h.dropIndex(ctx, record)
	default:
		return nil
	}
}

// reindex diffs the record's old and new caption term sets and applies the
// difference to the search table.
func (h *Handler) reindex(ctx context.Context, record events.DynamoDBEventRecord) error {
	postID := getStringAttr(record.Change.NewImage, "id")
	if postID == "" {
		return nil
	}

	oldCaption := getStringAttr(record.Change.OldImage, "caption")
	newCaption := getStringAttr(record.Change.NewImage, "caption")
	if oldCaption == newCaption {
		return nil
	}

	added, removed := diffTerms(Tokenize(oldCaption), Tokenize(newCaption))

	h.logger.Info("reindexing caption",
		"post", postID,
		"added", len(added),
		"removed", len(removed),
	)

	// Removals are best-effort; a stale term record only widens a search
	// result, and the retry after a partial failure is idempotent.
	for _, term := range removed {
		if err := h.store.UnindexTerm(ctx, term, postID); err != nil {
			h.logger.Warn("failed to unindex term",
				"term", term,
				"post", postID,
				"error", err,
			)
		}
	}

	for _, term := range added {
		if err := h.store.IndexTerm(ctx, term, postID); err != nil {
			return fmt.Errorf("index term %q: %w", term, err)
		}
	}

	return nil
}

// dropIndex clears every term record for a post whose document left the
// table (TTL expiry or out-of-band deletion). Unlike the best-effort
// removals during a reindex, a failure here is returned so the record
// retries; nothing else will ever clean these terms up.
func (h *Handler) dropIndex(ctx context.Context, record events.DynamoDBEventRecord) error {
	postID := getStringAttr(record.Change.OldImage, "id")
	if postID == "" {
		return nil
	}

	terms := Tokenize(getStringAttr(record.Change.OldImage, "caption"))
	if len(terms) == 0 {
		return nil
	}

	h.logger.Info("dropping caption index",
		"post", postID,
		"terms", len(terms),
	)

	for _, term := range terms {
		if err := h.store.UnindexTerm(ctx, term, postID); err != nil {
			return fmt.Errorf("unindex term %q: %w", term, err)
		}
	}

	return nil
}

// Tokenize splits a caption into its distinct lowercase search terms,
// preserving first-occurrence order.
func Tokenize(caption string) []string {
	raw := strings.FieldsFunc(strings.ToLower(caption), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]bool, len(raw))
	var terms []string
	for _, t := range raw {
		if len(t) < minTermLength || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	return terms
}

// diffTerms splits the old and new term sets into terms to index and terms
// to drop.
func diffTerms(oldTerms, newTerms []string) (added, removed []string) {
	inOld := make(map[string]bool, len(oldTerms))
	for _, t := range oldTerms {
		inOld[t] = true
	}
	inNew := make(map[string]bool, len(newTerms))
	for _, t := range newTerms {
		inNew[t] = true
	}

	for _, t := range newTerms {
		if !inOld[t] {
			added = append(added, t)
		}
	}
	for _, t := range oldTerms {
		if !inNew[t] {
			removed = append(removed, t)
		}
	}
	return added, removed
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}
