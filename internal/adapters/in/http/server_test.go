package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/ports"
	"dinein/internal/pkg/errs"
)

type stubTableUoW struct{}

func (stubTableUoW) Begin(context.Context) error    { return nil }
func (stubTableUoW) Commit(context.Context) error   { return nil }
func (stubTableUoW) Rollback(context.Context) error { return nil }
func (stubTableUoW) TableRepository() ports.TableRepository {
	return nil
}

type stubTableUoWFactory struct{}

func (stubTableUoWFactory) Create() commands.TableUoW { return stubTableUoW{} }

type stubOrderCache struct{}

func (stubOrderCache) Put(context.Context, *order.Order) error { return nil }
func (stubOrderCache) Get(context.Context, kernel.UUID) (*order.Order, error) {
	return nil, errs.NewObjectNotFoundError("order", nil)
}
func (stubOrderCache) Remove(context.Context, kernel.UUID) error              { return nil }
func (stubOrderCache) SetActiveOrder(context.Context, kernel.UUID, kernel.UUID) error { return nil }
func (stubOrderCache) ActiveOrder(context.Context, kernel.UUID) (kernel.UUID, error) {
	return kernel.UUID{}, errs.NewObjectNotFoundError("device", nil)
}
func (stubOrderCache) ClearActiveOrder(context.Context, kernel.UUID) error { return nil }
func (stubOrderCache) MarkDirty(context.Context, kernel.UUID) error        { return nil }
func (stubOrderCache) DirtyOrderIDs(context.Context) ([]kernel.UUID, error) {
	return nil, nil
}
func (stubOrderCache) ClearDirty(context.Context, kernel.UUID) error { return nil }

type stubTaxRateSource struct{}

func (stubTaxRateSource) RatesForLocation(context.Context, kernel.UUID) (order.TaxRates, error) {
	return order.DefaultTaxRates(), nil
}

func newStartOrderServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := commands.NewStartOrderCommandHandler(
		stubTableUoWFactory{}, stubOrderCache{}, stubTaxRateSource{}, logger,
	)
	return &Server{startOrderHandler: handler}
}

func postJSON(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, server.StartOrder(e.NewContext(req, rec)))
	return rec
}

func TestServer_StartOrder_ReturnsOrderID(t *testing.T) {
	server := newStartOrderServer()

	body := `{
		"locationId": "550e8400-e29b-41d4-a716-446655440000",
		"staffId": "550e8400-e29b-41d4-a716-446655440001",
		"deviceId": "550e8400-e29b-41d4-a716-446655440002",
		"orderNumber": "ORD-0042",
		"orderType": "Takeaway",
		"orderMode": "Counter"
	}`
	rec := postJSON(t, server, body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response StartOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	_, err := kernel.UUIDFromString(response.OrderID)
	assert.NoError(t, err, "response must carry the generated order id")
}

func TestServer_StartOrder_MalformedLocationID(t *testing.T) {
	server := newStartOrderServer()

	body := `{
		"locationId": "not-a-uuid",
		"staffId": "550e8400-e29b-41d4-a716-446655440001",
		"deviceId": "550e8400-e29b-41d4-a716-446655440002",
		"orderNumber": "ORD-0042",
		"orderType": "Takeaway",
		"orderMode": "Counter"
	}`
	rec := postJSON(t, server, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
