package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bill-center/backend/internal/integration/persistence/model"
	"github.com/bill-center/backend/test/integration/mock"
)

var idPlaceholder = regexp.MustCompile(`\{\{id:([^}]+)\}\}`)

// aCategoryExistsWithNameAndType creates a root category with the given name and type.
func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	return t.createCategory(name, categoryType, nil)
}

// aCategoryExistsWithNameUnder creates a subcategory that inherits its parent's type.
func (t *testContext) aCategoryExistsWithNameUnder(name, parentName string) error {
	parentID, ok := t.ids[parentName]
	if !ok {
		return fmt.Errorf("category %q was not created in this scenario", parentName)
	}

	var parent model.CategoryModel
	if err := t.db.DbConn.First(&parent, "id = ?", parentID).Error; err != nil {
		return fmt.Errorf("category %q not found: %w", parentName, err)
	}
	return t.createCategory(name, parent.Direction, &parentID)
}

func (t *testContext) createCategory(name, categoryType string, parentID *uuid.UUID) error {
	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        uuid.New(),
		Name:      name,
		Direction: strings.ToUpper(categoryType),
		ParentID:  parentID,
		Icon:      "tag",
		Color:     "#6366F1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(categoryModel).Error; err != nil {
		return err
	}
	t.ids[name] = categoryModel.ID
	return nil
}

// aTagExistsWithName creates a root tag.
func (t *testContext) aTagExistsWithName(name string) error {
	now := time.Now().UTC()
	tagModel := &model.TagModel{
		ID:        uuid.New(),
		Name:      name,
		Color:     "#94A3B8",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(tagModel).Error; err != nil {
		return err
	}
	t.ids[name] = tagModel.ID
	return nil
}

// theAIProviderRepliesWith scripts the completion content for every call.
func (t *testContext) theAIProviderRepliesWith(content *godog.DocString) error {
	t.ai.SetChatCompletion(-1, t.replacePlaceholders(content.Content))
	return nil
}

func (t *testContext) theAIProviderFailsWithStatus(status int) error {
	t.ai.SetResponse(-1, http.MethodPost, "/chat/completions", status, map[string]any{
		"error": map[string]any{"message": "upstream failure"},
	})
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), "application/json", nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), "application/json", payload)
}

// iUploadTheFileWithSourceAndContent posts content to the preview endpoint as a multipart upload.
func (t *testContext) iUploadTheFileWithSourceAndContent(fileName, source string, content *godog.DocString) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if source != "" {
		if err := writer.WriteField("source", source); err != nil {
			return err
		}
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte(content.Content + "\n")); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return t.executeRequest(http.MethodPost, "/api/v1/bills/upload/preview", writer.FormDataContentType(), buf.Bytes())
}

// replacePlaceholders substitutes {{id:<name>}}, {{last_id}} and {{batch_id}}.
func (t *testContext) replacePlaceholders(content string) string {
	content = idPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		name := idPlaceholder.FindStringSubmatch(match)[1]
		if id, ok := t.ids[name]; ok {
			return id.String()
		}
		return match
	})
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())
	content = strings.ReplaceAll(content, "{{batch_id}}", t.lastBatch)
	return content
}

func (t *testContext) executeRequest(method, path, contentType string, payload []byte) error {
	req, err := http.NewRequest(method, t.uri+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", contentType)
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture created resources so later steps can address them
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
			if name, ok := responseBody["name"].(string); ok {
				t.ids[name] = id
			}
		}
	}
	if batchID, ok := responseBody["batch_id"].(string); ok {
		t.lastBatch = batchID
	}

	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

// countRows counts live rows of table that match criteria.
func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Model(entity)
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theAIProviderShouldHaveReceivedRequests(quantity int) error {
	if got := t.ai.RequestCount(http.MethodPost, "/chat/completions"); got != quantity {
		return fmt.Errorf("expected %d completion requests, got %d", quantity, got)
	}
	return nil
}

// theAIProviderRequestShouldContain checks the prompt of the nth completion request (1-based).
func (t *testContext) theAIProviderRequestShouldContain(n int, expected string) error {
	body := t.ai.GetRequestBody(http.MethodPost, "/chat/completions", n-1)
	if body == nil {
		return fmt.Errorf("completion request %d was not received", n)
	}
	prompt := fmt.Sprintf("%v", getFieldValue(body, "messages.0.content"))
	if !strings.Contains(prompt, t.replacePlaceholders(expected)) {
		return fmt.Errorf("completion request %d does not contain %q: %s", n, expected, prompt)
	}
	return nil
}

// theAIProviderRequestShouldHaveHeader checks a header of the nth completion request (1-based).
func (t *testContext) theAIProviderRequestShouldHaveHeader(n int, name, expected string) error {
	headers := t.ai.GetRequestHeaders(http.MethodPost, "/chat/completions", n-1)
	if headers == nil {
		return fmt.Errorf("completion request %d was not received", n)
	}
	if got := headers.Get(name); got != expected {
		return fmt.Errorf("completion request %d header %s = %q, want %q", n, name, got, expected)
	}
	return nil
}

func (t *testContext) theCompletionCacheShouldHoldEntries(quantity int) error {
	if keys := mock.RedisKeys(); len(keys) != quantity {
		return fmt.Errorf("expected %d cached completions, got %d (%v)", quantity, len(keys), keys)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
