package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is a scripted HTTP upstream. Responses are keyed by method and path and
// may be set per call index or as a default for every call.
type ApiMock struct {
	mu                    sync.Mutex
	server                *httptest.Server
	requestsReceived      map[string][]map[string]any
	headersReceived       map[string][]http.Header
	responseMap           map[string]map[int]any
	responseStatus        map[string]map[int]int
	defaultResponseMap    map[string]any
	defaultResponseStatus map[string]int
}

func NewApiServer() *ApiMock {
	a := &ApiMock{}
	a.Reset()
	return a
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// Reset forgets every scripted response and recorded request.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestsReceived = map[string][]map[string]any{}
	a.headersReceived = map[string][]http.Header{}
	a.responseMap = map[string]map[int]any{}
	a.responseStatus = map[string]map[int]int{}
	a.defaultResponseMap = map[string]any{}
	a.defaultResponseStatus = map[string]int{}
}

// SetResponse scripts the reply for call index of method+path; index -1 sets the default.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if index == -1 {
		a.defaultResponseStatus[key] = status
		a.defaultResponseMap[key] = response
		return
	}
	if a.responseMap[key] == nil {
		a.responseMap[key] = map[int]any{}
		a.responseStatus[key] = map[int]int{}
	}
	a.responseMap[key][index] = response
	a.responseStatus[key][index] = status
}

// SetChatCompletion scripts an OpenAI-compatible chat completion whose first choice is content.
func (a *ApiMock) SetChatCompletion(index int, content string) {
	a.SetResponse(index, http.MethodPost, "/chat/completions", http.StatusOK, map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
}

func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+path])
}

func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.requestsReceived[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	headers := a.headersReceived[method+path]
	if index < 0 || index >= len(headers) {
		return nil
	}
	return headers[index]
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	a.mu.Lock()
	key := r.Method + r.URL.Path
	index := len(a.requestsReceived[key])
	a.requestsReceived[key] = append(a.requestsReceived[key], request)
	a.headersReceived[key] = append(a.headersReceived[key], r.Header.Clone())
	status, response := a.responseFor(key, index)
	a.mu.Unlock()

	payload, _ := json.Marshal(response)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (a *ApiMock) responseFor(key string, index int) (int, any) {
	if response, ok := a.responseMap[key][index]; ok {
		return statusOrDefault(a.responseStatus[key][index]), response
	}
	if response, ok := a.defaultResponseMap[key]; ok {
		return statusOrDefault(a.defaultResponseStatus[key]), response
	}
	return http.StatusOK, map[string]any{}
}

// statusOrDefault avoids WriteHeader(0) panics for responses scripted without a status.
func statusOrDefault(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}
