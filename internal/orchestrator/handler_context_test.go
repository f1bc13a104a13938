package orchestrator

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSessionContextStampsSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "sess-42"}}

	sessionContext()(c)

	if got := c.GetString("sessionId"); got != "sess-42" {
		t.Fatalf("sessionId = %q, want sess-42", got)
	}
}

func TestSessionContextSkipsCollectionRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	sessionContext()(c)

	if _, ok := c.Get("sessionId"); ok {
		t.Fatal("sessionId must not be set without an :id param")
	}
}
