package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agristat/internal/analytics"
	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/domain/dto"
	"github.com/ougirez/agristat/internal/pkg/constants"
	"github.com/ougirez/agristat/internal/pkg/seed"
	"github.com/ougirez/agristat/internal/pkg/store"
	"github.com/ougirez/agristat/internal/service/commodity"
	"github.com/ougirez/agristat/internal/service/importer"
)

const seededTotal = 12 * 15 * 6

func newTestAPI(t *testing.T) *APIService {
	t.Helper()

	records := func() []*domain.Commodity { return seed.Generate(seed.DefaultConfig()) }

	commodities := commodity.NewCommodityService(store.NewMemStore(store.WithRecords(records())), analytics.New())
	v, err := dto.NewValidator(constants.DefaultRegions, constants.DefaultCommodities)
	require.NoError(t, err)

	svc, err := NewAPIService(APIOpts{
		Commodities: commodities,
		Importer:    importer.NewImporterService(commodities, v),
		Validate:    v,
		ResetSource: records,
	})
	require.NoError(t, err)

	return svc
}

func doRequest(t *testing.T, svc *APIService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestNewAPIServiceRequiresDependencies(t *testing.T) {
	_, err := NewAPIService(APIOpts{})
	assert.Error(t, err)
}

func TestListCommodities(t *testing.T) {
	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodGet, "/api/v1/commodities?region=Garut", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Commodity](t, rec), 12*6)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities?region=all&year=2020&commodity=Padi", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Commodity](t, rec), 15)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Commodity](t, rec), seededTotal)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities?region=Nowhere", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListCommoditiesInvalidYear(t *testing.T) {
	rec := doRequest(t, newTestAPI(t), http.MethodGet, "/api/v1/commodities?year=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[domain.ErrorResponse](t, rec)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Message, "invalid filter")
}

func TestCommodityCRUD(t *testing.T) {
	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodPost, "/api/v1/commodities",
		`{"commodity_name":"Kopi","productivity":850,"year":2024,"region":"Garut","land_area":300}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Commodity](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusActive, created.Status)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[domain.Commodity](t, rec))

	rec = doRequest(t, svc, http.MethodPut, "/api/v1/commodities/"+created.ID, `{"productivity":910.5,"status":"inactive"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Commodity](t, rec)
	assert.Equal(t, 910.5, updated.Productivity)
	assert.Equal(t, domain.StatusInactive, updated.Status)
	assert.Equal(t, "Kopi", updated.CommodityName)

	rec = doRequest(t, svc, http.MethodDelete, "/api/v1/commodities/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())

	rec = doRequest(t, svc, http.MethodDelete, "/api/v1/commodities/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":false}`, rec.Body.String())

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "commodity not found", decode[domain.ErrorResponse](t, rec).Message)
}

func TestCreateCommodityValidation(t *testing.T) {
	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodPost, "/api/v1/commodities",
		`{"commodity_name":"Padi","productivity":5000,"year":2030,"region":"Garut","land_area":300}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[domain.ErrorResponse](t, rec).Message, "year: failed lte=2025")

	rec = doRequest(t, svc, http.MethodPost, "/api/v1/commodities",
		`{"commodity_name":"Padi","productivity":5000,"year":2020,"region":"Jakarta","land_area":300}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[domain.ErrorResponse](t, rec).Message, "region: failed region")

	rec = doRequest(t, svc, http.MethodPost, "/api/v1/commodities", `{"commodity_name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[domain.ErrorResponse](t, rec).Message, "bad request")

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities", "")
	assert.Len(t, decode[[]domain.Commodity](t, rec), seededTotal)
}

func TestUpdateCommodityErrors(t *testing.T) {
	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodPut, "/api/v1/commodities/missing", `{"productivity":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, svc, http.MethodPut, "/api/v1/commodities/1", `{"productivity":-10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodGet, "/api/v1/analytics/dashboard?region=Garut&commodity=Padi", "")
	require.Equal(t, http.StatusOK, rec.Code)

	dashboard := decode[domain.Dashboard](t, rec)
	assert.Equal(t, 12, dashboard.RecordCount)
	assert.Equal(t, 12, dashboard.Stats.RecordCount)
	assert.Len(t, dashboard.YoY, 12)
	assert.Len(t, dashboard.RegionRanking, 15)
	assert.Len(t, dashboard.CommodityTrends, 6)

	for i, p := range dashboard.RegionRanking {
		assert.Equal(t, i+1, p.Rank)
	}
}

func TestRegionalAndTrend(t *testing.T) {
	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodGet, "/api/v1/analytics/regions?year=2020", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.RegionComparison](t, rec), 15)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/analytics/regions?year=twenty", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/analytics/trend?commodity=Padi&region=Bogor", "")
	require.Equal(t, http.StatusOK, rec.Code)
	trend := decode[domain.ProductivityTrend](t, rec)
	assert.Len(t, trend.Series, 12)
	require.NotNil(t, trend.Region)
	assert.Equal(t, "Bogor", *trend.Region)
	assert.Equal(t, 2013, trend.Growth.FirstYear)
	assert.Equal(t, 2024, trend.Growth.LastYear)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/analytics/trend", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog(t *testing.T) {
	rec := doRequest(t, newTestAPI(t), http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	catalog := decode[domain.CatalogInfo](t, rec)
	assert.Len(t, catalog.Available.Years, 12)
	assert.Equal(t, constants.DefaultRegions, catalog.Regions)
}

func TestResetRestoresSeed(t *testing.T) {
	svc := newTestAPI(t)

	doRequest(t, svc, http.MethodDelete, "/api/v1/commodities/1", "")
	rec := doRequest(t, svc, http.MethodGet, "/api/v1/commodities", "")
	require.Len(t, decode[[]domain.Commodity](t, rec), seededTotal-1)

	rec = doRequest(t, svc, http.MethodPost, "/api/v1/admin/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"records":1080}`, rec.Body.String())

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities", "")
	assert.Len(t, decode[[]domain.Commodity](t, rec), seededTotal)
}

func TestImportTables(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<table>
<tr><th>Komoditi</th><th>Produktivitas</th><th>Tahun</th><th>Wilayah</th><th>Luas Lahan</th></tr>
<tr><td>Teh</td><td>1.250</td><td>2024</td><td>Garut</td><td>410</td></tr>
</table>`))
	}))
	defer page.Close()

	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodPost, "/api/v1/providers/import", `{"urls":["`+page.URL+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[domain.ImportResult](t, rec)
	assert.Equal(t, 1, result.Imported)

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/commodities?commodity=Teh", "")
	items := decode[[]domain.Commodity](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, 1250.0, items[0].Productivity)

	rec = doRequest(t, svc, http.MethodPost, "/api/v1/providers/import", `{"urls":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, svc, http.MethodPost, "/api/v1/providers/import", `{"urls":["not a url"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsAndUnknownRoute(t *testing.T) {
	svc := newTestAPI(t)

	rec := doRequest(t, svc, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "agristat_records")

	rec = doRequest(t, svc, http.MethodGet, "/api/v1/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[domain.ErrorResponse](t, rec).Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
