package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-intake/internal/application/dto"
	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
	"github.com/jhoicas/stock-intake/internal/domain/entity"
	apphttp "github.com/jhoicas/stock-intake/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes y helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type memRepo struct {
	mu        sync.Mutex
	rows      []*entity.Stock
	createErr error
	listErr   error
}

func (r *memRepo) Create(_ context.Context, s *entity.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	s.ID = int64(len(r.rows) + 1)
	cp := *s
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	sorted := append([]*entity.Stock(nil), r.rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].UploadedAt.After(sorted[j].UploadedAt) })
	if offset >= len(sorted) {
		return []*entity.Stock{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (r *memRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return 0, r.listErr
	}
	return len(r.rows), nil
}

func (r *memRepo) seed(n int) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		_ = r.Create(context.Background(), &entity.Stock{
			Name:       "item-" + strconv.Itoa(i),
			Quantity:   i,
			Barcode:    "BC" + strconv.Itoa(i),
			Location:   "A1",
			ImageURL:   "https://blob.test/" + strconv.Itoa(i) + ".png",
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

type fakeStore struct {
	err error
}

func (s *fakeStore) Put(_ context.Context, fileName, _ string, body io.Reader, _ int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	_, _ = io.Copy(io.Discard, body)
	return "https://blob.test/stocks/uuid_" + fileName, nil
}

type fakeGenerator struct {
	rows int
}

func (g *fakeGenerator) GenerateStockSheet(_ context.Context, e []*entity.Stock) ([]byte, error) {
	g.rows = len(e)
	return []byte("PK-xlsx"), nil
}

func (g *fakeGenerator) GenerateStockReport(_ context.Context, e []*entity.Stock) ([]byte, error) {
	g.rows = len(e)
	return []byte("%PDF-1.3"), nil
}

type testEnv struct {
	app   *fiber.App
	repo  *memRepo
	store *fakeStore
	gen   *fakeGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{repo: &memRepo{}, store: &fakeStore{}, gen: &fakeGenerator{}}
	uc := appstock.NewUseCase(env.repo, env.store, env.gen, env.gen, appstock.Options{PageSize: 25})

	env.app = fiber.New(fiber.Config{Views: apphttp.NewViewsEngine()})
	apphttp.Router(env.app, apphttp.RouterDeps{StockUC: uc, AppName: "Stock Intake", Location: time.UTC})
	return env
}

type part struct {
	field, value string
}

// multipartBody arma el formulario; fileName vacío omite la parte "file".
func multipartBody(t *testing.T, fileName string, fields ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f.field, f.value))
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", "image/png")
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte("\x89PNG\r\n\x1a\nfake"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postUpload(t *testing.T, app *fiber.App, body io.Reader, contentType string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/upload
// ──────────────────────────────────────────────────────────────────────────────

func TestUpload_Exitoso(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartBody(t, "caja.png",
		part{"name", "Cajas"}, part{"quantity", "12"}, part{"dimensions", "40x30x20"},
		part{"barcode", "7701234"}, part{"location", "Bodega 2"})

	resp, out := postUpload(t, env.app, body, ct)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "https://blob.test/stocks/uuid_caja.png", out["url"])
	require.Len(t, env.repo.rows, 1)
	assert.Equal(t, "Bodega 2", env.repo.rows[0].Location)
	assert.Equal(t, 12, env.repo.rows[0].Quantity)
	assert.Equal(t, "7701234", env.repo.rows[0].Barcode)
}

func TestUpload_SinArchivo400(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartBody(t, "", part{"location", "A1"})

	resp, out := postUpload(t, env.app, body, ct)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", out["error"])
	assert.Empty(t, env.repo.rows)
}

func TestUpload_SinUbicacion400(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartBody(t, "a.png", part{"name", "x"}, part{"location", "   "})

	resp, out := postUpload(t, env.app, body, ct)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", out["error"])
}

func TestUpload_NoMultipart400(t *testing.T) {
	env := newTestEnv(t)
	resp, out := postUpload(t, env.app, strings.NewReader(`{"location":"A1"}`), "application/json")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", out["error"])
}

func TestUpload_CantidadNoEntera400(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartBody(t, "a.png", part{"quantity", "2.5"}, part{"location", "A1"})

	resp, out := postUpload(t, env.app, body, ct)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Quantity must be an integer", out["error"])
}

func TestUpload_FalloAlmacenamiento500(t *testing.T) {
	env := newTestEnv(t)
	env.store.err = errors.New("bucket not found")
	body, ct := multipartBody(t, "a.png", part{"location", "A1"})

	resp, out := postUpload(t, env.app, body, ct)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Upload failed", out["error"])
	assert.Empty(t, env.repo.rows, "sin imagen no se inserta fila")
}

func TestUpload_FalloBaseDeDatos500ConMensaje(t *testing.T) {
	env := newTestEnv(t)
	env.repo.createErr = errors.New(`relation "stocks" does not exist`)
	body, ct := multipartBody(t, "a.png", part{"location", "A1"})

	resp, out := postUpload(t, env.app, body, ct)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, out["error"], `relation "stocks" does not exist`)
}

func TestUpload_FalloPostgresDevuelveSoloElMensaje(t *testing.T) {
	env := newTestEnv(t)
	// El repositorio real envuelve el *pgconn.PgError con el contexto de la operación.
	env.repo.createErr = fmt.Errorf("insert stock: %w", &pgconn.PgError{
		Severity: "ERROR",
		Code:     "42P01",
		Message:  `relation "stocks" does not exist`,
	})
	body, ct := multipartBody(t, "a.png", part{"location", "A1"})

	resp, out := postUpload(t, env.app, body, ct)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, `relation "stocks" does not exist`, out["error"])
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/stocks y /api/stocks/export
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PaginaYOrden(t *testing.T) {
	env := newTestEnv(t)
	env.repo.seed(30)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/stocks?page=2", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.StockListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, dto.PageResponse{Page: 2, PageSize: 25, Total: 30, TotalPages: 2}, out.Page)
	require.Len(t, out.Items, 5)
	assert.Equal(t, "item-5", out.Items[0].Name, "la página 2 empieza en la sexta más antigua")
	assert.Equal(t, "item-1", out.Items[4].Name)
}

func TestList_ErrorRepositorio500(t *testing.T) {
	env := newTestEnv(t)
	env.repo.listErr = errors.New("db down")

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/stocks", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")
}

func TestExport_XLSXPorDefecto(t *testing.T) {
	env := newTestEnv(t)
	env.repo.seed(30)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/stocks/export?page=1", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="stock_entries.xlsx"`)
	assert.Equal(t, 25, env.gen.rows, "solo la página actual")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "PK-xlsx", string(body))
}

func TestExport_TodoEnPDF(t *testing.T) {
	env := newTestEnv(t)
	env.repo.seed(30)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/stocks/export?all=true&format=pdf", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock_entries.pdf")
	assert.Equal(t, 30, env.gen.rows)
}

func TestExport_FormatoInvalido400(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/stocks/export?format=csv", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_FORMAT")
}

func TestMetrics_Expuesto(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "go_goroutines")
}
