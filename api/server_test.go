// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(New(nil, 1, nil).Register)
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestConvertA(t *testing.T) {
	router := newTestRouter()
	body := "name,ip4address,isotime\r\nexample.com,192.0.2.1,2013-01-01T00:00:00Z\r\n"
	req := httptest.NewRequest(http.MethodPost, "/convert/a", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentTypeNQuads, rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get(HeaderRecordsRead))
	assert.Equal(t, "0", rec.Header().Get(HeaderRecordsSkipped))
	out := rec.Body.String()
	assert.Contains(t, out, "<uri:domain:example.com> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://purl.org/dns#FQDN> .")
	assert.Contains(t, out, "<https://dnscensus2013.neocities.org/probe-2013-01-01T00:00:00+00:00> .")
	assert.True(t, strings.HasSuffix(out, "\n\n"), "block must end with a blank line")
}

func TestConvertReportsSkipped(t *testing.T) {
	router := newTestRouter()
	body := "name,ip6address,isotime\r\nexample.com,not-an-ip,2013-01-01T00:00:00Z\r\nexample.com,2001:db8::1,2013-01-01T00:00:00Z\r\n"
	req := httptest.NewRequest(http.MethodPost, "/convert/AAAA", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get(HeaderRecordsRead))
	assert.Equal(t, "1", rec.Header().Get(HeaderRecordsSkipped))
	assert.Contains(t, rec.Body.String(), "<uri:ipv6:2001:db8::1>")
}

func TestConvertUnknownKind(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/convert/PTR", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertZone(t *testing.T) {
	router := newTestRouter()
	zone := "example.com. 3600 IN NS ns1.example.net.\nexample.com. 3600 IN SRV 0 0 5060 sip.example.com.\n"
	req := httptest.NewRequest(http.MethodPost, "/convert/zone?isotime=2013-01-01T00:00:00Z", strings.NewReader(zone))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get(HeaderRecordsRead))
	assert.Equal(t, "1", rec.Header().Get(HeaderRecordsSkipped))
	assert.Contains(t, rec.Body.String(), "<uri:domain:ns1.example.net>")
}

func TestConvertZoneDefaultTimeIsUTC(t *testing.T) {
	local := time.Local
	time.Local = time.FixedZone("UTC+2", 2*60*60)
	defer func() { time.Local = local }()

	router := newTestRouter()
	zone := "example.com. 3600 IN NS ns1.example.net.\n"
	req := httptest.NewRequest(http.MethodPost, "/convert/zone", strings.NewReader(zone))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `+00:00"^^<http://www.w3.org/2001/XMLSchema#dateTime>`)
	assert.NotContains(t, rec.Body.String(), "+02:00")
}

func TestConvertZoneBadTimestamp(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/convert/zone?isotime=yesterday-ish", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dnsrdf_records_total")
}
