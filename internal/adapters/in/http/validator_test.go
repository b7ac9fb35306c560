package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidator(t *testing.T) {
	e := newTestEcho(t, Handlers{}, nil)
	token := signToken(t, testSecret, "pablo")

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"negative price", http.MethodPost, "/api/v1/update-price", `{"orderId":"o1","estimatedPrice":"-3"}`, http.StatusBadRequest},
		{"numeric price", http.MethodPost, "/api/v1/update-price", `{"orderId":"o1","estimatedPrice":3}`, http.StatusBadRequest},
		{"blank staff id", http.MethodPost, "/api/v1/assign-staff", `{"orderId":"o1","staffIds":["pablo",""]}`, http.StatusBadRequest},
		{"staff ids not a list", http.MethodPost, "/api/v1/assign-staff", `{"orderId":"o1","staffIds":"pablo"}`, http.StatusBadRequest},
		{"missing subscription keys", http.MethodPost, "/api/v1/subscriptions", `{"endpoint":"https://push.example.com"}`, http.StatusBadRequest},
		{"bad since", http.MethodGet, "/api/v1/orders?since=yesterday", "", http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/api/v1/claim", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.target, tt.body, token)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
