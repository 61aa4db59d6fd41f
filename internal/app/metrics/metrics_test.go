package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInternalError(t *testing.T) {
	before := testutil.ToFloat64(internalErrors)
	RecordInternalError()
	assert.Equal(t, before+1, testutil.ToFloat64(internalErrors))
}

func TestRecordOrderPlacedNormalisesCardType(t *testing.T) {
	before := testutil.ToFloat64(ordersPlaced.WithLabelValues("visa"))
	RecordOrderPlaced("VISA")
	assert.Equal(t, before+1, testutil.ToFloat64(ordersPlaced.WithLabelValues("visa")))
}

func TestRequestStartedBalancesInFlight(t *testing.T) {
	before := testutil.ToFloat64(httpInFlight)
	done := RequestStarted(http.MethodGet)
	assert.Equal(t, before+1, testutil.ToFloat64(httpInFlight))
	done("/cart", http.StatusOK)
	assert.Equal(t, before, testutil.ToFloat64(httpInFlight))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordCartAddition()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "petstore_cart_additions_total")
}
