package response

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	return c, w
}

// 校验层产出的错误必须原样带着完整违规列表落到响应体里
func TestErrorRendersValidationViolations(t *testing.T) {
	c, w := newTestContext()

	err := util.ValidateDTO(&dto.CreatePostDTO{Title: "Hi"})
	require.Error(t, err)

	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)

	Error(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Code    int                      `json:"code"`
		Message string                   `json:"message"`
		Data    []service.FieldViolation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, BadRequest, body.Code)
	assert.Equal(t, "validation failed", body.Message)
	assert.Equal(t, vErr.Violations, body.Data)
}

func TestErrorMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"param invalid", service.ErrParamInvalid, http.StatusBadRequest, "invalid request parameters"},
		{"post missing", service.ErrPostNotFound, http.StatusNotFound, "post not found"},
		{"slug conflict", service.ErrSlugConflict, http.StatusConflict, "post with this slug already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)

			var body dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
