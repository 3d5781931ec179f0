package a2a

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/persona-insights/internal/agent"
	"github.com/BerylCAtieno/persona-insights/internal/httperror"
	"github.com/BerylCAtieno/persona-insights/internal/middleware"
	"github.com/BerylCAtieno/persona-insights/internal/models"
	"github.com/BerylCAtieno/persona-insights/internal/render"
	"github.com/BerylCAtieno/persona-insights/internal/web"
)

const (
	artifactName   = "Marketing Insights"
	promptExample  = `{"persona": {"age": 34, "occupation": "office_worker"}, "challenges": ["time management"]}`
	generationFail = "Insight generation failed. Please try again later."
)

// Handler serves the A2A JSON-RPC endpoint and the agent card.
type Handler struct {
	service web.InsightService
	card    agent.Card
	logger  *slog.Logger
}

func NewHandler(service web.InsightService, card agent.Card, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		card:    card,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET(agent.CardPath, h.ServeAgentCard)
	r.POST(agent.A2APath, h.HandleInsights)
}

// ServeAgentCard serves the agent card.
func (h *Handler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// HandleInsights processes one A2A message. Requests without the JSON-RPC envelope are accepted as bare
// message params. JSON-RPC errors are sent with 200 OK.
func (h *Handler) HandleInsights(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.sendError(c, nil, CodeParseError, "Failed to read request body")
		return
	}
	h.logger.Debug("a2a_request",
		"request_id", middleware.GetRequestID(c),
		"bytes", len(body),
	)

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil {
		h.sendError(c, nil, CodeParseError, "Invalid JSON")
		return
	}

	if rpcReq.JSONRPC == "" && rpcReq.Method == "" {
		var params MessageParams
		if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
			h.sendError(c, nil, CodeInvalidRequest, "Invalid request format")
			return
		}
		h.sendResult(c, nil, h.runTask(c, params.Message))
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.sendError(c, rpcReq.ID, CodeInvalidRequest, "Invalid JSON-RPC version")
		return
	}

	switch rpcReq.Method {
	case MethodMessageSend, MethodAgentTask:
		var params MessageParams
		if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
			h.sendError(c, rpcReq.ID, CodeInvalidParams, "Invalid parameters")
			return
		}
		h.sendResult(c, rpcReq.ID, h.runTask(c, params.Message))
	default:
		h.sendError(c, rpcReq.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", rpcReq.Method))
	}
}

func (h *Handler) runTask(c *gin.Context, msg A2AMessage) TaskResult {
	task := newTask(msg)

	data, ok := extractRequestData(msg)
	if !ok {
		return task.finish(StateInputRequired, "Send the persona as a data part or as JSON text, for example: "+promptExample)
	}

	req, err := web.CollectData(data)
	if err != nil {
		return task.finish(StateInputRequired, inputProblem(err))
	}

	result, err := h.service.GenerateInsights(c.Request.Context(), req.Persona, req.ChallengeList())
	if err != nil {
		h.logger.Error("a2a_generation_failed",
			"request_id", middleware.GetRequestID(c),
			"task_id", task.ID,
			"err", err,
		)
		return task.finish(StateFailed, generationFail)
	}

	text := render.Markdown(result)
	envelope := models.Envelope(result, h.service.SchemaVersion(), "")
	task.Artifacts = []Artifact{
		{
			ArtifactID: uuid.NewString(),
			Name:       artifactName,
			Parts:      []MessagePart{TextPart(text), DataPart(envelope)},
		},
	}
	return task.finish(StateCompleted, text)
}

// extractRequestData finds the insight request in a message: the last data part holding an object,
// otherwise the last text part that is a JSON object.
func extractRequestData(msg A2AMessage) (map[string]any, bool) {
	for i := len(msg.Parts) - 1; i >= 0; i-- {
		part := msg.Parts[i]
		if part.Kind != PartData {
			continue
		}
		if data, ok := part.Data.(map[string]any); ok {
			return data, true
		}
	}
	for i := len(msg.Parts) - 1; i >= 0; i-- {
		part := msg.Parts[i]
		if part.Kind != PartText {
			continue
		}
		text := bytes.TrimSpace([]byte(part.Text))
		if len(text) == 0 || text[0] != '{' {
			continue
		}
		var data map[string]any
		if err := json.Unmarshal(text, &data); err == nil {
			return data, true
		}
	}
	return nil, false
}

func inputProblem(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid persona input: " + err.Error()
	}
	fields := httperror.FieldMessages(validationErrors)
	lines := make([]string, 0, len(fields))
	for field, message := range fields {
		lines = append(lines, fmt.Sprintf("- %s %s", field, message))
	}
	slices.Sort(lines)
	return "Invalid persona input:\n" + strings.Join(lines, "\n")
}

func newTask(msg A2AMessage) TaskResult {
	task := TaskResult{
		ID:      uuid.NewString(),
		Kind:    "task",
		History: []A2AMessage{msg},
	}
	if msg.TaskID != nil && *msg.TaskID != "" {
		task.ID = *msg.TaskID
	}
	if msg.ContextID != nil {
		task.ContextID = *msg.ContextID
	}
	return task
}

func (t TaskResult) finish(state string, text string) TaskResult {
	taskID := t.ID
	t.Status = TaskStatus{
		State:     state,
		Timestamp: Timestamp(),
		Message: &A2AMessage{
			Kind:      "message",
			Role:      RoleAgent,
			MessageID: uuid.NewString(),
			TaskID:    &taskID,
			Parts:     []MessagePart{TextPart(text)},
		},
	}
	return t
}

func (h *Handler) sendResult(c *gin.Context, id any, task TaskResult) {
	h.logger.Info("a2a_task",
		"request_id", middleware.GetRequestID(c),
		"task_id", task.ID,
		"state", task.Status.State,
	)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  task,
	})
}

func (h *Handler) sendError(c *gin.Context, id any, code int, message string) {
	h.logger.Warn("a2a_rpc_error",
		"request_id", middleware.GetRequestID(c),
		"code", code,
		"message", message,
	)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
