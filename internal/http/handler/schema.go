package handler

import (
	"net/http"

	"codeflow.app/relay/common/llm"
	"codeflow.app/relay/internal/http/dto"
	"codeflow.app/relay/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
)

// SchemaHandler publishes the JSON Schemas of the result shapes the model is asked for.
type SchemaHandler struct {
	schemas map[string]*jsonschema.Schema
}

func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{
		schemas: map[string]*jsonschema.Schema{
			"issue":           llm.GenerateSchema[model.Issue](),
			"test-generation": llm.GenerateSchema[model.TestGenerationResult](),
			"verification":    llm.GenerateSchema[model.VerificationResult](),
		},
	}
}

func (h *SchemaHandler) Get(c *gin.Context) {
	schema, ok := h.schemas[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "unknown schema"})
		return
	}
	c.JSON(http.StatusOK, schema)
}
