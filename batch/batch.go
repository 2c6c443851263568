// Package batch builds outlines for many PDF files concurrently.
// It coordinates reading, parsing, outline building and the optional
// content-hash cache, isolating per-document failures.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pdfoutline"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents processed at once when
// Processor.Concurrency is not set.
const DefaultConcurrency = 4

// Processor builds outlines for a set of PDF files.
type Processor struct {
	Reader   pdfoutline.DocumentReader
	Outliner pdfoutline.Outliner
	// Cache is optional. When set, documents whose bytes were seen before
	// reuse the stored outline.
	Cache pdfoutline.OutlineService
	// Salt is mixed into the content hash so outlines built with different
	// tuning are cached separately.
	Salt        string
	Concurrency int
	// ReadFile defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// Document holds the outcome of processing a single file.
type Document struct {
	Name   string
	Path   string
	Hash   string
	Result *pdfoutline.DocumentResult
	Cached bool
	Err    error
}

// Result holds the outcome of a batch, with documents in input order.
type Result struct {
	Documents []Document
	Processed int
	Failed    int
	Cached    int
}

// Outlines returns the successful documents as named results, in input order.
func (r *Result) Outlines() []pdfoutline.NamedResult {
	out := make([]pdfoutline.NamedResult, 0, len(r.Documents))
	for _, doc := range r.Documents {
		if doc.Err != nil {
			continue
		}
		out = append(out, pdfoutline.NamedResult{Name: doc.Name, Result: doc.Result})
	}
	return out
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Cached    bool
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Process builds an outline for every path. A failing document is
// recorded in its Document.Err and the rest continue. Process only
// returns an error when ctx is canceled.
func (p *Processor) Process(ctx context.Context, paths []string, progress ProgressFunc) (*Result, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(paths)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range paths {
			g.Go(func() error {
				resultCh <- indexed{position: i, doc: p.processFile(gctx, path)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	result := &Result{Documents: make([]Document, total)}
	for r := range resultCh {
		completed.Add(1)
		result.Documents[r.position] = r.doc

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Name:      r.doc.Name,
			Cached:    r.doc.Cached,
		}
		switch {
		case r.doc.Err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = r.doc.Err
		case r.doc.Cached:
			result.Processed++
			result.Cached++
		default:
			result.Processed++
		}
		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return result, nil
}

type indexed struct {
	position int
	doc      Document
}

// processFile reads, parses and outlines a single file, consulting the
// cache first when one is configured.
func (p *Processor) processFile(ctx context.Context, path string) Document {
	doc := Document{Name: filepath.Base(path), Path: path}

	if err := ctx.Err(); err != nil {
		doc.Err = err
		return doc
	}

	readFile := p.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	data, err := readFile(path)
	if err != nil {
		doc.Err = fmt.Errorf("read %s: %w", doc.Name, err)
		return doc
	}
	doc.Hash = ContentHash(p.Salt, data)

	if p.Cache != nil {
		rec, err := p.Cache.FindOutlineByHash(ctx, doc.Hash)
		if err == nil && rec.Result != nil {
			doc.Result = rec.Result
			doc.Cached = true
			return doc
		}
	}

	parsed, err := p.Reader.ReadDocument(ctx, data)
	if err != nil {
		doc.Err = err
		return doc
	}
	doc.Result = p.Outliner.Build(parsed)

	if p.Cache != nil {
		// A failed store only costs a rebuild next time.
		_ = p.Cache.CreateOutline(ctx, &pdfoutline.OutlineRecord{
			Name:        doc.Name,
			ContentHash: doc.Hash,
			Result:      doc.Result,
		})
	}
	return doc
}

// ContentHash returns the cache key for data under salt.
func ContentHash(salt string, data []byte) string {
	h := xxhash.New()
	_, _ = h.WriteString(salt)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(data)
	return fmt.Sprintf("%x", h.Sum64())
}
