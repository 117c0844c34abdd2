package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func record(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return w, body
}

func TestSuccessEnvelope(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Success(c, gin.H{"hello": "world"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if body["status"] != float64(http.StatusOK) {
		t.Errorf("envelope status missing or wrong: %v", body["status"])
	}
	if _, ok := body["message"]; ok {
		t.Error("success envelope should omit message")
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["hello"] != "world" {
		t.Errorf("data not carried through: %v", body["data"])
	}
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name         string
		handler      gin.HandlerFunc
		expectedCode int
		messageKey   string
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, map[string]string{"title": "required"}) }, http.StatusBadRequest, "title"},
		{"NotFound", func(c *gin.Context) { NotFound(c, "No notes found.") }, http.StatusNotFound, "error"},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, "Invalid token") }, http.StatusUnauthorized, "error"},
		{"SuccessMessage", func(c *gin.Context) { SuccessMessage(c, "done") }, http.StatusOK, "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := record(t, tt.handler)
			if w.Code != tt.expectedCode {
				t.Errorf("expected %d, got %d", tt.expectedCode, w.Code)
			}
			if body["status"] != float64(tt.expectedCode) {
				t.Errorf("envelope status %v != %d", body["status"], tt.expectedCode)
			}
			message, ok := body["message"].(map[string]interface{})
			if !ok {
				t.Fatalf("message is not an object: %v", body["message"])
			}
			if _, ok := message[tt.messageKey]; !ok {
				t.Errorf("message missing key %q: %v", tt.messageKey, message)
			}
			if _, ok := body["data"]; ok {
				t.Error("error envelope should omit data")
			}
		})
	}
}
