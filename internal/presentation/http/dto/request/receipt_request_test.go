package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindJSON(t *testing.T, body string, target interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c.ShouldBindJSON(target)
}

func TestCreateReceiptRequestAmountBounds(t *testing.T) {
	var req CreateReceiptRequest
	require.NoError(t, bindJSON(t, `{"student_name":"Aarav Sharma","amount":2500}`, &req))
	assert.Equal(t, 2500.0, req.Amount)

	// Out-of-range floats would make the int64 conversion implementation-defined
	assert.Error(t, bindJSON(t, `{"amount":1e30}`, &CreateReceiptRequest{}))
	assert.Error(t, bindJSON(t, `{"amount":-5}`, &CreateReceiptRequest{}))
}

func TestUpdateReceiptRequestAmountBounds(t *testing.T) {
	var req UpdateReceiptRequest
	require.NoError(t, bindJSON(t, `{"amount":9999}`, &req))
	require.NotNil(t, req.Amount)
	assert.Equal(t, 9999.0, *req.Amount)

	// Absent amount stays nil so the update leaves it untouched
	var partial UpdateReceiptRequest
	require.NoError(t, bindJSON(t, `{"student_name":"Diya Patel"}`, &partial))
	assert.Nil(t, partial.Amount)

	assert.Error(t, bindJSON(t, `{"amount":1e30}`, &UpdateReceiptRequest{}))
	assert.Error(t, bindJSON(t, `{"amount":-1}`, &UpdateReceiptRequest{}))
}
