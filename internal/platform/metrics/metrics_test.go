package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTP_ObserveCountsErrorsSeparately(t *testing.T) {
	m := NewHTTP()

	m.Observe(http.MethodGet, "/cats/{id}", http.StatusOK, time.Millisecond)
	m.Observe(http.MethodGet, "/cats/{id}", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.reqs.WithLabelValues("GET", "/cats/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reqs.WithLabelValues("GET", "/cats/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errs.WithLabelValues("GET", "/cats/{id}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.errs.WithLabelValues("GET", "/cats/{id}", "200")))
}
