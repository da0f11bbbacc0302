package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"codeflow.app/relay/internal/service"
)

var _ = Describe("ReviewService", func() {
	var (
		ctx context.Context
		gen *stubGenerator
		svc service.ReviewService
	)

	BeforeEach(func() {
		ctx = context.Background()
		gen = &stubGenerator{}
		svc = service.NewReviewService(gen)
	})

	Describe("Analyze", func() {
		It("returns an empty list for a fenced empty array", func() {
			gen.generateFn = reply("```json\n[]\n```")

			result, err := svc.Analyze(ctx, service.CodeInput{Code: "x = 1", Language: "python"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Bugs).To(BeEmpty())
			Expect(result.Bugs).NotTo(BeNil())
			Expect(result.Total).To(Equal(0))
		})

		It("coerces a non-array document to an empty list", func() {
			gen.generateFn = reply("{}")

			result, err := svc.Analyze(ctx, service.CodeInput{Code: "x = 1"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(0))
		})

		It("counts issues and forwards them verbatim", func() {
			gen.generateFn = reply(`[{"id":1,"severity":"critical","line":3,"title":"SQL injection","custom":true},{"id":2}]`)

			result, err := svc.Analyze(ctx, service.CodeInput{Code: "query(user_input)"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(2))
			Expect(string(result.Bugs[0])).To(ContainSubstring(`"custom":true`))
		})

		It("returns a ParseError for output that is not JSON", func() {
			gen.generateFn = reply("not json")

			_, err := svc.Analyze(ctx, service.CodeInput{Code: "x = 1"})

			var parseErr *service.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(parseErr.Operation).To(Equal(service.OperationAnalyze))
			Expect(err.Error()).NotTo(ContainSubstring("not json"))
			Expect(gen.calls()).To(HaveLen(1))
		})

		DescribeTable("rejects blank code without calling the model",
			func(code string) {
				_, err := svc.Analyze(ctx, service.CodeInput{Code: code})
				Expect(err).To(MatchError(service.ErrEmptyCode))
				Expect(gen.calls()).To(BeEmpty())
			},
			Entry("empty", ""),
			Entry("spaces", "   "),
			Entry("newlines and tabs", "\n\t\n"),
		)

		It("defaults the language to python", func() {
			gen.generateFn = reply("[]")

			_, err := svc.Analyze(ctx, service.CodeInput{Code: "print(1)"})

			Expect(err).NotTo(HaveOccurred())
			Expect(gen.calls()[0]).To(ContainSubstring("Analyze the following python code"))
			Expect(gen.calls()[0]).To(ContainSubstring("```python\nprint(1)\n```"))
		})

		It("wraps model failures in a ProviderError", func() {
			boom := errors.New("dial tcp: connection refused")
			gen.generateFn = func(context.Context, string) (string, error) { return "", boom }

			_, err := svc.Analyze(ctx, service.CodeInput{Code: "x = 1"})

			var providerErr *service.ProviderError
			Expect(errors.As(err, &providerErr)).To(BeTrue())
			Expect(errors.Is(err, boom)).To(BeTrue())
		})

		It("keeps concurrent calls isolated", func() {
			gen.generateFn = func(_ context.Context, prompt string) (string, error) {
				for _, key := range []string{"alpha", "beta"} {
					if strings.Contains(prompt, "snippet_"+key) {
						return fmt.Sprintf(`[{"id":1,"title":%q}]`, key), nil
					}
				}
				return "[]", nil
			}

			var wg sync.WaitGroup
			titles := make([]string, 20)
			for i := range titles {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()

					key := "alpha"
					if i%2 == 1 {
						key = "beta"
					}
					result, err := svc.Analyze(ctx, service.CodeInput{Code: "snippet_" + key + " = 1"})
					Expect(err).NotTo(HaveOccurred())
					Expect(result.Bugs).To(HaveLen(1))

					var issue struct {
						Title string `json:"title"`
					}
					Expect(json.Unmarshal(result.Bugs[0], &issue)).To(Succeed())
					titles[i] = issue.Title
				}(i)
			}
			wg.Wait()

			for i, title := range titles {
				if i%2 == 0 {
					Expect(title).To(Equal("alpha"))
				} else {
					Expect(title).To(Equal("beta"))
				}
			}
		})
	})

	Describe("Fix", func() {
		It("returns the cleaned text without parsing it as JSON", func() {
			gen.generateFn = reply("def f(): return {1:2}")

			fixed, err := svc.Fix(ctx, service.FixInput{CodeInput: service.CodeInput{Code: "def f(): return {1:2"}})

			Expect(err).NotTo(HaveOccurred())
			Expect(fixed).To(Equal("def f(): return {1:2}"))
		})

		It("strips fences with any language tag", func() {
			gen.generateFn = reply("```javascript\nconst a = 1;\n```")

			fixed, err := svc.Fix(ctx, service.FixInput{CodeInput: service.CodeInput{Code: "const a = 1", Language: "javascript"}})

			Expect(err).NotTo(HaveOccurred())
			Expect(fixed).To(Equal("const a = 1;"))
		})

		It("embeds the indented bug list in the prompt", func() {
			gen.generateFn = reply("x = 2")

			_, err := svc.Fix(ctx, service.FixInput{
				CodeInput: service.CodeInput{Code: "x = 1"},
				Bugs:      json.RawMessage(`[{"id":1,"title":"wrong value"}]`),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(gen.calls()[0]).To(ContainSubstring("Bugs Found:\n[\n  {\n    \"id\": 1,\n    \"title\": \"wrong value\"\n  }\n]"))
		})

		It("uses an empty list when no bugs are given", func() {
			gen.generateFn = reply("x = 2")

			_, err := svc.Fix(ctx, service.FixInput{CodeInput: service.CodeInput{Code: "x = 1"}})

			Expect(err).NotTo(HaveOccurred())
			Expect(gen.calls()[0]).To(ContainSubstring("Bugs Found:\n[]\n"))
		})

		It("rejects blank code", func() {
			_, err := svc.Fix(ctx, service.FixInput{CodeInput: service.CodeInput{Code: " "}})
			Expect(err).To(MatchError(service.ErrEmptyCode))
			Expect(gen.calls()).To(BeEmpty())
		})
	})

	Describe("GenerateTests", func() {
		It("forwards the parsed document unchanged", func() {
			body := `{"test_code":"def test_a(): assert True","test_cases":[{"id":1,"category":"happy_path"}]}`
			gen.generateFn = reply("```json\n" + body + "\n```")

			doc, err := svc.GenerateTests(ctx, service.CodeInput{Code: "def a(): pass"})

			Expect(err).NotTo(HaveOccurred())
			Expect(string(doc)).To(MatchJSON(body))
		})

		It("rejects blank code", func() {
			_, err := svc.GenerateTests(ctx, service.CodeInput{Code: ""})
			Expect(err).To(MatchError(service.ErrEmptyCode))
		})

		It("returns a ParseError for output that is not JSON", func() {
			gen.generateFn = reply("not json")

			_, err := svc.GenerateTests(ctx, service.CodeInput{Code: "x"})

			var parseErr *service.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(parseErr.Operation).To(Equal(service.OperationGenerateTests))
		})
	})

	Describe("Verify", func() {
		It("forwards the parsed document unchanged", func() {
			body := `{"is_clean":false,"remaining_issues":[{"severity":"low","title":"t","description":"d"}],"quality_score":80,"summary":"s"}`
			gen.generateFn = reply(body)

			doc, err := svc.Verify(ctx, service.CodeInput{Code: "x = 1"})

			Expect(err).NotTo(HaveOccurred())
			Expect(string(doc)).To(MatchJSON(body))
		})

		It("forwards blank code to the model", func() {
			gen.generateFn = reply(`{"is_clean":true,"remaining_issues":[],"quality_score":100,"summary":"empty"}`)

			_, err := svc.Verify(ctx, service.CodeInput{Code: "  "})

			Expect(err).NotTo(HaveOccurred())
			Expect(gen.calls()).To(HaveLen(1))
		})

		It("returns a ParseError for output that is not JSON", func() {
			gen.generateFn = reply("not json")

			_, err := svc.Verify(ctx, service.CodeInput{Code: "x"})

			var parseErr *service.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(err.Error()).To(Equal("could not parse the verification response"))
		})
	})
})
