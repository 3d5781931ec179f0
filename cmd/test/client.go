package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// TestClient runs the smoke checks against one server.
type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string, timeout time.Duration) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type insightRequest struct {
	Persona    map[string]any `json:"persona"`
	Challenges []string       `json:"challenges"`
}

var samplePersona = insightRequest{
	Persona: map[string]any{
		"age":            34,
		"gender":         "female",
		"marital_status": "married",
		"children":       2,
		"occupation":     "office_worker",
		"income":         75,
		"location":       "suburban",
		"interests":      []string{"health", "parenting"},
		"values":         []string{"family", "security"},
		"tech_affinity":  3,
	},
	Challenges: []string{"time management", "work life balance"},
}

func (tc *TestClient) runAll() bool {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Insights API", tc.testSampleInsights},
		{"A2A Insights", tc.testSampleA2A},
	}

	passed, failed := 0, 0
	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Println(successStyle.Render(fmt.Sprintf("Passed: %d", passed)))
	fmt.Println(errorStyle.Render(fmt.Sprintf("Failed: %d", failed)))
	fmt.Printf("Total: %d\n", passed+failed)
	return failed == 0
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.get("/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.get("/.well-known/agent.json")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d: %s", status, string(body)))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON("Response:", body)
	return true
}

func (tc *TestClient) testSampleInsights() bool {
	return tc.testInsights(samplePersona)
}

func (tc *TestClient) testSampleA2A() bool {
	return tc.testA2A(samplePersona)
}

func (tc *TestClient) testInsights(req insightRequest) bool {
	printTestHeader("Testing Insights API")

	status, body, err := tc.post("/api/insights", req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		printJSON("Response:", body)
		return false
	}

	var envelope struct {
		Kind     string `json:"kind"`
		ReportID string `json:"report_id"`
		Error    *struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
			Raw     string `json:"raw"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if envelope.Kind != "report" {
		printError("Model reply could not be parsed")
		if envelope.Error != nil {
			printResult(envelope.Error.Kind+": "+envelope.Error.Message, envelope.Error.Raw)
		}
		return false
	}

	printSuccess("Insights generated")
	printJSON("Report:", body)
	return tc.testDownload(envelope.ReportID)
}

func (tc *TestClient) testDownload(reportID string) bool {
	if reportID == "" {
		printError("Response carried no report id")
		return false
	}
	status, body, err := tc.get("/reports/" + reportID + "/download")
	if err != nil {
		printError(fmt.Sprintf("Download failed: %v", err))
		return false
	}
	if status != http.StatusOK || !json.Valid(body) {
		printError(fmt.Sprintf("Expected a JSON download, got status %d", status))
		return false
	}
	printSuccess(fmt.Sprintf("Report download available (%d bytes)", len(body)))
	return true
}

func (tc *TestClient) testA2A(req insightRequest) bool {
	printTestHeader("Testing A2A Insights")

	data, err := json.Marshal(req)
	if err != nil {
		printError(fmt.Sprintf("Encode request: %v", err))
		return false
	}
	var dataPart map[string]any
	if err := json.Unmarshal(data, &dataPart); err != nil {
		printError(fmt.Sprintf("Encode request: %v", err))
		return false
	}

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind":  "message",
				"role":  "user",
				"parts": []map[string]any{{"kind": "data", "data": dataPart}},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	status, body, err := tc.post("/a2a/insights", request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var response struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Result *struct {
			Status struct {
				State   string `json:"state"`
				Message *struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if response.Error != nil {
		printError(fmt.Sprintf("RPC error %d: %s", response.Error.Code, response.Error.Message))
		return false
	}
	if response.Result == nil {
		printError("Invalid result format")
		return false
	}

	if msg := response.Result.Status.Message; msg != nil {
		for _, part := range msg.Parts {
			printResult("Agent reply:", part.Text)
		}
	}
	if state := response.Result.Status.State; state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}
	printSuccess("A2A task completed")
	return true
}

func (tc *TestClient) get(path string) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("GET %s\n", url)
	resp, err := tc.client.Get(url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) post(path string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}
	url := tc.baseURL + path
	fmt.Printf("POST %s\n", url)
	resp, err := tc.client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}
