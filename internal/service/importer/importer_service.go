package importer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/domain/dto"
	"github.com/ougirez/agristat/internal/pkg/constants"
	"github.com/ougirez/agristat/internal/pkg/logger"
	"github.com/ougirez/agristat/internal/pkg/metrics"
)

// RowSink receives validated rows.
type RowSink interface {
	ImportMany(ctx context.Context, rows []dto.CommodityDto) []*domain.Commodity
}

type Option func(*Service)

func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

// WithTimeout bounds a whole ImportFromURLs call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

func WithRetry(interval time.Duration, maxRetries uint64) Option {
	return func(s *Service) {
		s.retryInterval = interval
		s.maxRetries = maxRetries
	}
}

type Service struct {
	sink     RowSink
	validate *validator.Validate
	client   *http.Client
	timeout  time.Duration

	retryInterval time.Duration
	maxRetries    uint64
}

func NewImporterService(sink RowSink, validate *validator.Validate, opts ...Option) *Service {
	s := &Service{
		sink:          sink,
		validate:      validate,
		client:        http.DefaultClient,
		retryInterval: 10 * time.Millisecond,
		maxRetries:    10,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ImportFromURLs fetches every page concurrently, parses its commodity table
// and hands the rows that pass validation to the sink in one batch. Any fetch
// or parse failure aborts the run before anything is imported.
func (s *Service) ImportFromURLs(ctx context.Context, urls []string) (*domain.ImportResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tables := make([][]dto.CommodityDto, len(urls))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, url := range urls {
		eg.Go(func() error {
			rows, err := s.fetchTable(egCtx, url)
			if err != nil {
				logger.Errorf(ctx, "fetchTable, url-%s: %s", url, err.Error())
				return fmt.Errorf("fetchTable, url-%s: %w", url, err)
			}

			logger.Infof(ctx, "parsed %d rows from %s", len(rows), url)
			tables[i] = rows
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrImportFailed, err)
	}

	result := &domain.ImportResult{
		Sources:  len(urls),
		Rejected: make([]domain.RejectedRow, 0),
	}
	valid := make([]dto.CommodityDto, 0)
	for i, rows := range tables {
		result.Parsed += len(rows)
		for j, row := range rows {
			if err := s.validate.Struct(row); err != nil {
				result.Rejected = append(result.Rejected, domain.RejectedRow{
					Source: urls[i],
					Row:    j + 1,
					Reason: dto.ValidationMessage(err),
				})
				continue
			}
			valid = append(valid, row)
		}
	}

	created := s.sink.ImportMany(ctx, valid)
	result.Imported = len(created)

	metrics.ImportedRowsTotal.WithLabelValues("imported").Add(float64(result.Imported))
	metrics.ImportedRowsTotal.WithLabelValues("rejected").Add(float64(len(result.Rejected)))
	if len(result.Rejected) > 0 {
		logger.Warnf(ctx, "import rejected %d of %d rows", len(result.Rejected), result.Parsed)
	}

	return result, nil
}

func (s *Service) fetchTable(ctx context.Context, url string) ([]dto.CommodityDto, error) {
	var rows []dto.CommodityDto
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequestWithContext: %w", err))
			}

			resp, err := s.client.Do(req)
			if err != nil {
				return fmt.Errorf("client.Do: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}
			if resp.StatusCode != http.StatusOK {
				return backoff.Permanent(fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status))
			}

			parsed, err := ParseTable(resp.Body)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("ParseTable: %w", err))
			}

			rows = parsed
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryInterval), s.maxRetries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
