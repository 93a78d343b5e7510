package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Ollama", func() {
	var (
		server    *ghttp.Server
		generator *Ollama
		req       Request
		response  string
		err       error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		var newErr error
		generator, newErr = NewOllama(server.URL(), "llava")
		Expect(newErr).NotTo(HaveOccurred())
		req = Request{Prompt: "describe this receipt"}
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		response, err = generator.Generate(context.Background(), req)
	})

	When("the chat call succeeds", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest("POST", "/api/chat"),
				ghttp.VerifyContentType("application/json"),
				ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
					Message: ollamaMessage{Role: "assistant", Content: "  {\"vendor_name\": \"x\"}  "},
					Done:    true,
				}),
			))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("trims the response text", func() {
			Expect(response).To(Equal(`{"vendor_name": "x"}`))
		})
	})

	When("the request carries an image and a schema", func() {
		var received ollamaChatRequest

		BeforeEach(func() {
			req.Image = []byte("png bytes")
			req.Schema = imageReceiptSchema
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest("POST", "/api/chat"),
				func(w http.ResponseWriter, r *http.Request) {
					Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
					Message: ollamaMessage{Role: "assistant", Content: "{}"},
					Done:    true,
				}),
			))
		})

		It("sends the model name", func() {
			Expect(received.Model).To(Equal("llava"))
		})

		It("disables streaming", func() {
			Expect(received.Stream).To(BeFalse())
		})

		It("sends the prompt as a user message", func() {
			Expect(received.Messages).To(HaveLen(1))
			Expect(received.Messages[0].Role).To(Equal("user"))
			Expect(received.Messages[0].Content).To(Equal("describe this receipt"))
		})

		It("sends the image base64-encoded on the message", func() {
			Expect(received.Messages[0].Images).To(ConsistOf(base64.StdEncoding.EncodeToString([]byte("png bytes"))))
		})

		It("sends the schema as the format field", func() {
			var schema Schema
			Expect(json.Unmarshal(received.Format, &schema)).To(Succeed())
			Expect(schema.Required).To(Equal([]string{"vendor_name", "receipt_date", "total_amount"}))
		})
	})

	When("the request carries no schema", func() {
		var received ollamaChatRequest

		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest("POST", "/api/chat"),
				func(w http.ResponseWriter, r *http.Request) {
					Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
					Message: ollamaMessage{Role: "assistant", Content: "{}"},
					Done:    true,
				}),
			))
		})

		It("omits the format field", func() {
			Expect(received.Format).To(BeEmpty())
		})
	})

	When("the API returns an error status", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "model not found"))
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("status 500"))
		})
	})

	When("the response body is not JSON", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusOK, "not json"))
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
