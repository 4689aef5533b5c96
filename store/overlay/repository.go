// Package overlay persists whole JSON documents keyed by name. Each
// logical collection (diary annotations, archived events, dismissals)
// is one document read and written in full, so every mutation is a
// single logical replace.
package overlay

import "context"

// Repository is a whole-document blob store. Get returns (nil, nil)
// when the document has never been written.
type Repository interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, body []byte) error
	Delete(ctx context.Context, name string) error
}
