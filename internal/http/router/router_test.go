package router_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"codeflow.app/relay/internal/http/router"
	"codeflow.app/relay/internal/service"
)

type cannedGenerator string

func (g cannedGenerator) Generate(context.Context, string) (string, error) {
	return string(g), nil
}

func (g cannedGenerator) Model() string {
	return "canned"
}

var _ = Describe("SetupRoutes", func() {
	var engine *gin.Engine

	setup := func(webDir string) {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		services := service.NewServices(cannedGenerator("```json\n[]\n```"))
		router.SetupRoutes(engine, services, router.RouterConfig{WebDir: webDir})
	}

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("serves health", func() {
		setup("")
		w := serve(http.MethodGet, "/health", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status":"ok"}`))
	})

	It("wires the relay endpoints", func() {
		setup("")

		w := serve(http.MethodPost, "/api/analyze", `{"code":"x = 1"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"bugs":[],"total":0}`))

		w = serve(http.MethodPost, "/api/fix", `{"code":"x = 1"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = serve(http.MethodPost, "/api/generate-tests", `{"code":"x = 1"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`[]`))

		w = serve(http.MethodPost, "/api/verify", `{"code":""}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = serve(http.MethodGet, "/api/schemas/issue", "")
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("serves the frontend when index.html exists", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>codeflow</h1>"), 0o644)).To(Succeed())
		setup(dir)

		w := serve(http.MethodGet, "/", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("codeflow"))
	})

	It("skips the frontend when the directory is missing", func() {
		setup(filepath.Join(GinkgoT().TempDir(), "missing"))

		w := serve(http.MethodGet, "/", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
