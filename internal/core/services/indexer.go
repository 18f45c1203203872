package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
	"github.com/custodia-labs/indexgate/internal/core/ports/driving"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// createdAtAscending keeps paging stable while the pages are being walked.
// It asserts nothing about global consistency against concurrent writers.
var createdAtAscending = []string{domain.FieldCreatedAt + " asc"}

// IndexerService is the bulk mutation engine: paginated fetch-all, bounded
// batch writes and delete-by-filter loops against an eventually consistent
// index that caps page size at domain.MaxTop.
type IndexerService struct {
	client     driven.SearchIndexClient
	endpoints  driving.EndpointService
	newBackOff newBackOffFunc
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewIndexerService creates a mutation engine.
func NewIndexerService(client driven.SearchIndexClient, endpoints driving.EndpointService) *IndexerService {
	return &IndexerService{
		client:     client,
		endpoints:  endpoints,
		newBackOff: defaultBackOff,
		sleep:      contextSleep,
	}
}

// Count returns the total number of rows matching the filter, using a
// count-only probe (top=0).
func (s *IndexerService) Count(ctx context.Context, target domain.IndexTarget, filter string) (int64, error) {
	if err := s.endpoints.Validate(target.Endpoint); err != nil {
		return 0, err
	}

	var count int64
	err := retryTransient(ctx, s.newBackOff, func() error {
		resp, searchErr := s.client.Search(ctx, target, driven.SearchRequest{
			Filter:            filter,
			Top:               0,
			IncludeTotalCount: true,
		})
		if searchErr != nil {
			return searchErr
		}
		count = resp.TotalCount
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count rows in %q: %w", target.IndexName, err)
	}
	return count, nil
}

// FetchAll returns every row matching the filter. A count probe decides the
// page count; the pages are then walked with skip/top in created_at order
// and concatenated.
func (s *IndexerService) FetchAll(ctx context.Context, target domain.IndexTarget, filter string) ([]driven.Document, error) {
	count, err := s.Count(ctx, target, filter)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	pages := int((count + domain.MaxTop - 1) / domain.MaxTop)
	logger.Debug("Fetch-all %q: %d rows over %d pages", filter, count, pages)

	rows := make([]driven.Document, 0, count)
	for page := 0; page < pages; page++ {
		var resp *driven.SearchResponse
		err := retryTransient(ctx, s.newBackOff, func() error {
			var searchErr error
			resp, searchErr = s.client.Search(ctx, target, driven.SearchRequest{
				Filter:  filter,
				Top:     domain.MaxTop,
				Skip:    page * domain.MaxTop,
				OrderBy: createdAtAscending,
			})
			return searchErr
		})
		if err != nil {
			return nil, fmt.Errorf("fetch page %d of %q: %w", page, target.IndexName, err)
		}
		rows = append(rows, resp.Documents...)
	}
	return rows, nil
}

// DeleteByFilter removes every row matching the filter. The index deletes
// eventually, not immediately, so the loop re-counts after each batch and
// pauses in between. A transient failure restarts the whole loop from
// scratch, which is safe: delete-by-filter is idempotent.
func (s *IndexerService) DeleteByFilter(ctx context.Context, target domain.IndexTarget, filter string) error {
	if err := s.endpoints.Validate(target.Endpoint); err != nil {
		return err
	}
	logger.Section("Delete By Filter")
	logger.Debug("Index: %s/%s, filter: %q", target.Endpoint, target.IndexName, filter)

	err := retryTransient(ctx, s.newBackOff, func() error {
		for {
			resp, searchErr := s.client.Search(ctx, target, driven.SearchRequest{
				Filter:            filter,
				Top:               domain.MaxTop,
				IncludeTotalCount: true,
			})
			if searchErr != nil {
				return searchErr
			}
			if resp.TotalCount == 0 || len(resp.Documents) == 0 {
				return nil
			}

			keys := make([]string, 0, len(resp.Documents))
			for _, row := range resp.Documents {
				keys = append(keys, row.Key())
			}
			logger.Debug("Deleting batch of %d rows (%d remaining)", len(keys), resp.TotalCount)

			if _, deleteErr := s.client.DeleteDocuments(ctx, target, keys); deleteErr != nil {
				return deleteErr
			}
			if sleepErr := s.sleep(ctx, domain.DeleteLoopInterval); sleepErr != nil {
				return sleepErr
			}
		}
	})
	if err != nil {
		return fmt.Errorf("delete by filter %q in %q: %w", filter, target.IndexName, err)
	}
	return nil
}

// Upload submits one batch of rows (merge-or-upload) and returns the keys
// whose per-row succeeded flag is true. A partial failure is reported
// through the returned keys, not as an error, so best-effort bulk jobs can
// decide remediation themselves.
func (s *IndexerService) Upload(ctx context.Context, target domain.IndexTarget, docs []driven.Document) ([]string, error) {
	if err := s.endpoints.Validate(target.Endpoint); err != nil {
		return nil, err
	}
	if len(docs) > domain.MaxTop {
		return nil, fmt.Errorf("batch of %d rows exceeds the maximum batch size %d: %w",
			len(docs), domain.MaxTop, domain.ErrInvalidArgument)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var results []driven.IndexResult
	err := retryTransient(ctx, s.newBackOff, func() error {
		var uploadErr error
		results, uploadErr = s.client.UploadDocuments(ctx, target, docs)
		return uploadErr
	})
	if err != nil {
		return nil, fmt.Errorf("upload %d rows to %q: %w", len(docs), target.IndexName, err)
	}

	succeeded := make([]string, 0, len(results))
	for _, res := range results {
		if res.Succeeded {
			succeeded = append(succeeded, res.Key)
		} else {
			logger.Warn("Row %q failed to persist: %s", res.Key, res.Message)
		}
	}
	return succeeded, nil
}

// UpdateOneByFilter reads the single row the filter is expected to match,
// mutates it in place with the supplied field values and re-uploads it as a
// one-row batch. The read/re-upload pair is not atomic; the race window is
// accepted (see the index admin port for the same trade-off).
func (s *IndexerService) UpdateOneByFilter(ctx context.Context, target domain.IndexTarget, filter string, fields map[string]any) error {
	if err := s.endpoints.Validate(target.Endpoint); err != nil {
		return err
	}

	var resp *driven.SearchResponse
	err := retryTransient(ctx, s.newBackOff, func() error {
		var searchErr error
		resp, searchErr = s.client.Search(ctx, target, driven.SearchRequest{
			Filter: filter,
			Top:    1,
		})
		return searchErr
	})
	if err != nil {
		return fmt.Errorf("find row by filter %q in %q: %w", filter, target.IndexName, err)
	}
	if len(resp.Documents) == 0 {
		return fmt.Errorf("row matching %q in %q: %w", filter, target.IndexName, domain.ErrNotFound)
	}

	row := resp.Documents[0]
	for field, value := range fields {
		row[field] = value
	}

	var results []driven.IndexResult
	err = retryTransient(ctx, s.newBackOff, func() error {
		var uploadErr error
		results, uploadErr = s.client.UploadDocuments(ctx, target, []driven.Document{row})
		return uploadErr
	})
	if err != nil {
		return fmt.Errorf("re-upload row %q: %w", row.Key(), err)
	}
	if len(results) == 0 || !results[0].Succeeded {
		return fmt.Errorf("row %q was not persisted", row.Key())
	}
	return nil
}

// contextSleep pauses for d or until the context is cancelled.
func contextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
