//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	reqdto "couponbot/internal/handler/dto/request"
	"couponbot/tests/common/dbtest"
	"couponbot/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginAdmin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/admin/login",
		reqdto.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &result)
	require.NotEmpty(t, result.Token, "login response carried no token")

	return result.Token
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, username, role string) string {
	t.Helper()
	dbtest.CreateTestAdmin(t, db, username, role)
	return LoginAdmin(t, router, username, "password123")
}
