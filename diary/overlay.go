package diary

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/propdiary/propdiary/models"
)

// Overlay document names. Each one is a single JSON blob in the
// documents store.
const (
	docAnnotations = "diary_events"
	docArchived    = "archived_diary_events"
	docDismissed   = "dismissed_diary_events"
)

// overlayVersion is bumped when a document layout changes. A document
// with an unknown version is treated the same as a corrupt one.
const overlayVersion = 1

// Annotation is the user-maintained part of a diary event: everything
// else is recomputed from record data, these fields survive between
// computations.
type Annotation struct {
	Comments  string             `json:"comments"`
	Status    models.EventStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type annotationDoc struct {
	Version int                   `json:"version"`
	Events  map[string]Annotation `json:"events"`
}

type idSetDoc struct {
	Version int      `json:"version"`
	IDs     []string `json:"ids"`
}

// loadAnnotations reads the annotation document. A missing, corrupt or
// unknown-version document degrades to empty: derived events must never
// be lost to overlay damage.
func (e *Engine) loadAnnotations(ctx context.Context) map[string]Annotation {
	body, err := e.store.Documents.Get(ctx, docAnnotations)
	if err != nil {
		e.log.Warn(ctx, "failed to read annotation document, treating as empty", "error", err)
		return map[string]Annotation{}
	}
	if body == nil {
		return map[string]Annotation{}
	}
	var doc annotationDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		e.log.Warn(ctx, "corrupt annotation document, treating as empty", "error", err)
		return map[string]Annotation{}
	}
	if doc.Version != overlayVersion {
		e.log.Warn(ctx, "unknown annotation document version, treating as empty", "version", doc.Version)
		return map[string]Annotation{}
	}
	if doc.Events == nil {
		doc.Events = map[string]Annotation{}
	}
	return doc.Events
}

func (e *Engine) saveAnnotations(ctx context.Context, events map[string]Annotation) error {
	body, err := json.Marshal(annotationDoc{Version: overlayVersion, Events: events})
	if err != nil {
		return fmt.Errorf("failed to encode annotation document: %w", err)
	}
	return e.store.Documents.Put(ctx, docAnnotations, body)
}

// loadIDSet reads one of the archived/dismissed id-set documents with
// the same degrade-to-empty behavior as loadAnnotations.
func (e *Engine) loadIDSet(ctx context.Context, name string) map[string]bool {
	set := map[string]bool{}
	body, err := e.store.Documents.Get(ctx, name)
	if err != nil {
		e.log.Warn(ctx, "failed to read overlay document, treating as empty", "doc", name, "error", err)
		return set
	}
	if body == nil {
		return set
	}
	var doc idSetDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		e.log.Warn(ctx, "corrupt overlay document, treating as empty", "doc", name, "error", err)
		return set
	}
	if doc.Version != overlayVersion {
		e.log.Warn(ctx, "unknown overlay document version, treating as empty", "doc", name, "version", doc.Version)
		return set
	}
	for _, id := range doc.IDs {
		set[id] = true
	}
	return set
}

func (e *Engine) saveIDSet(ctx context.Context, name string, set map[string]bool) error {
	doc := idSetDoc{Version: overlayVersion, IDs: make([]string, 0, len(set))}
	for id := range set {
		doc.IDs = append(doc.IDs, id)
	}
	sort.Strings(doc.IDs)
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode overlay document %s: %w", name, err)
	}
	return e.store.Documents.Put(ctx, name, body)
}
