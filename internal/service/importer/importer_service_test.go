package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/domain/dto"
	"github.com/ougirez/agristat/internal/pkg/constants"
)

type sinkMock struct {
	mu   sync.Mutex
	rows []dto.CommodityDto
}

func (m *sinkMock) ImportMany(_ context.Context, rows []dto.CommodityDto) []*domain.Commodity {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Commodity, 0, len(rows))
	for _, row := range rows {
		m.rows = append(m.rows, row)
		out = append(out, row.ToDomain("x"))
	}
	return out
}

const mixedPage = `<table>
<tr><th>Komoditi</th><th>Produktivitas</th><th>Tahun</th><th>Wilayah</th><th>Luas Lahan</th></tr>
<tr><td>Padi</td><td>5.500</td><td>2023</td><td>Garut</td><td>1.200</td></tr>
<tr><td>Padi</td><td>5.500</td><td>2030</td><td>Garut</td><td>1.200</td></tr>
<tr><td>Gandum</td><td>5.500</td><td>2023</td><td>Garut</td><td>1.200</td></tr>
</table>`

const secondPage = `<table>
<tr><th>Komoditi</th><th>Produktivitas</th><th>Tahun</th><th>Wilayah</th><th>Luas Lahan</th></tr>
<tr><td>Jagung</td><td>6200</td><td>2022</td><td>Bandung</td><td>900</td></tr>
</table>`

func newTestService(t *testing.T, sink RowSink) *Service {
	t.Helper()

	v, err := dto.NewValidator(constants.DefaultRegions, constants.DefaultCommodities)
	require.NoError(t, err)

	return NewImporterService(sink, v, WithRetry(time.Millisecond, 5), WithTimeout(5*time.Second))
}

func TestImportFromURLs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(mixedPage)) })
	mux.HandleFunc("/b", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(secondPage)) })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sink := &sinkMock{}
	svc := newTestService(t, sink)

	result, err := svc.ImportFromURLs(context.Background(), []string{srv.URL + "/a", srv.URL + "/b"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Sources)
	assert.Equal(t, 4, result.Parsed)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, domain.RejectedRow{Source: srv.URL + "/a", Row: 2, Reason: "year: failed lte=2025"}, result.Rejected[0])
	assert.Equal(t, domain.RejectedRow{Source: srv.URL + "/a", Row: 3, Reason: "commodity_name: failed commodity"}, result.Rejected[1])

	require.Len(t, sink.rows, 2)
	assert.Equal(t, "Padi", sink.rows[0].CommodityName)
	assert.Equal(t, 5500.0, sink.rows[0].Productivity)
	assert.Equal(t, "Jagung", sink.rows[1].CommodityName)
}

func TestImportFromURLsUsesConfiguredClient(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(secondPage))
	}))
	defer srv.Close()

	v, err := dto.NewValidator(constants.DefaultRegions, constants.DefaultCommodities)
	require.NoError(t, err)

	sink := &sinkMock{}
	svc := NewImporterService(sink, v, WithHTTPClient(srv.Client()), WithRetry(time.Millisecond, 1))

	result, err := svc.ImportFromURLs(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, sink.rows, 1)
	assert.Equal(t, "Jagung", sink.rows[0].CommodityName)
}

func TestImportFromURLsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(secondPage))
	}))
	defer srv.Close()

	sink := &sinkMock{}
	result, err := newTestService(t, sink).ImportFromURLs(context.Background(), []string{srv.URL})
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1, result.Imported)
}

func TestImportFromURLsFailsFastOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sink := &sinkMock{}
	_, err := newTestService(t, sink).ImportFromURLs(context.Background(), []string{srv.URL})
	require.Error(t, err)

	assert.ErrorIs(t, err, constants.ErrImportFailed)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, sink.rows)
}

func TestImportFromURLsPageWithoutTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<p>maintenance</p>"))
	}))
	defer srv.Close()

	_, err := newTestService(t, &sinkMock{}).ImportFromURLs(context.Background(), []string{srv.URL})
	assert.ErrorIs(t, err, constants.ErrImportFailed)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestImportFromURLsNothing(t *testing.T) {
	result, err := newTestService(t, &sinkMock{}).ImportFromURLs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Empty(t, result.Rejected)
}
