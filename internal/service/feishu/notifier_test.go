package feishu

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MomentumReport/internal/domain/models"
)

func webhook(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func TestDeliver(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		success bool
		kind    models.DeliveryErrorKind
	}{
		{name: "code zero", status: 200, body: `{"code":0,"msg":"success"}`, success: true},
		{name: "legacy StatusCode zero", status: 200, body: `{"StatusCode":0,"StatusMessage":"success"}`, success: true},
		{name: "app error code", status: 200, body: `{"code":9999,"msg":"bad"}`, kind: models.DeliveryProtocol},
		{name: "legacy StatusCode error", status: 200, body: `{"StatusCode":1}`, kind: models.DeliveryProtocol},
		{name: "no status field", status: 200, body: `{}`, kind: models.DeliveryProtocol},
		{name: "http 500", status: 500, body: `oops`, kind: models.DeliveryTransport},
		{name: "non JSON", status: 200, body: `<html>`, kind: models.DeliveryTransport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var hits int32
			srv := webhook(t, tc.status, tc.body, &hits)
			defer srv.Close()

			err := New(srv.URL).Deliver(context.Background(), BuildTextPayload("t", "x"))
			assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "exactly one attempt")

			res := models.NewDeliveryResult(err)
			assert.Equal(t, tc.success, res.Success)
			if tc.success {
				assert.NoError(t, err)
				return
			}
			assert.True(t, models.IsDeliveryKind(err, tc.kind), "got %v", err)
			assert.Contains(t, res.Message, tc.body)
		})
	}
}

func TestDeliverTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := New(srv.URL, WithTimeout(20*time.Millisecond)).Deliver(context.Background(), BuildTextPayload("t", "x"))
	require.Error(t, err)
	assert.True(t, models.IsDeliveryKind(err, models.DeliveryTransport))
	assert.False(t, models.NewDeliveryResult(err).Success)
}

func TestDeliverReportFormats(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"code":0}`)
	}))
	defer srv.Close()

	doc := sampleDoc(models.StanceAggressiveBuy)

	require.NoError(t, New(srv.URL).DeliverReport(context.Background(), doc, "# body"))
	assert.Equal(t, "interactive", got["msg_type"])

	require.NoError(t, New(srv.URL, WithFormat(FormatText)).DeliverReport(context.Background(), doc, "# body"))
	assert.Equal(t, "text", got["msg_type"])
	assert.Contains(t, got["content"].(map[string]interface{})["text"], "# body")

	require.NoError(t, New(srv.URL, WithFormat(FormatPost)).DeliverReport(context.Background(), doc, "# body"))
	assert.Equal(t, "post", got["msg_type"])
	post := got["content"].(map[string]interface{})["post"].(map[string]interface{})
	assert.Contains(t, post, "zh_cn")

	require.NoError(t, New(srv.URL, WithFormat("sms")).DeliverReport(context.Background(), doc, "# body"))
	assert.Equal(t, "interactive", got["msg_type"])
}

