package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"codeflow.app/relay/internal/http/handler"
)

var _ = Describe("SchemaHandler", func() {
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		router.GET("/api/schemas/:name", handler.NewSchemaHandler().Get)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	DescribeTable("publishes result schemas",
		func(name string, properties []string) {
			w := get("/api/schemas/" + name)
			Expect(w.Code).To(Equal(http.StatusOK))

			var schema struct {
				Properties map[string]any `json:"properties"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &schema)).To(Succeed())
			for _, p := range properties {
				Expect(schema.Properties).To(HaveKey(p))
			}
		},
		Entry("issue", "issue", []string{"id", "severity", "line", "title", "description", "original_code", "fixed_code", "explanation"}),
		Entry("test generation", "test-generation", []string{"test_code", "test_cases"}),
		Entry("verification", "verification", []string{"is_clean", "remaining_issues", "quality_score", "summary"}),
	)

	It("returns 404 for unknown schemas", func() {
		w := get("/api/schemas/bogus")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
