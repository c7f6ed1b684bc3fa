// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bill-center/backend/config"
	"github.com/bill-center/backend/internal/infra/dependency"
	"github.com/bill-center/backend/internal/integration/persistence/model"
	"github.com/bill-center/backend/test/integration/mock"
)

// suite holds resources shared by every scenario.
type suite struct {
	server *httptest.Server
	db     *mock.Db
	redis  *redis.Client
	ai     *mock.ApiMock
}

var shared *suite

// testContext holds the state of one scenario.
type testContext struct {
	*suite
	uri       string
	headers   map[string]string
	client    *http.Client
	response  *response
	ids       map[string]uuid.UUID
	lastID    uuid.UUID
	lastBatch string
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite starts the API with an in-memory database, an in-memory Redis
// and a scripted OpenAI-compatible upstream.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		ai := mock.NewApiServer()
		ai.Start()

		env := map[string]string{
			"ENV":                      "test",
			"DB_DRIVER":                "sqlite",
			"AI_PROVIDER":              "openai",
			"AI_API_KEY":               "test-key",
			"AI_BASE_URL":              ai.GetUrl(),
			"AI_MODEL":                 "test-model",
			"AI_TIMEOUT":               "5s",
			"ENRICHMENT_CACHE_ENABLED": "true",
		}
		for key, value := range env {
			_ = os.Setenv(key, value)
		}
		cfg := config.Load()

		database := mock.NewDb(model.All()...)
		redisClient := mock.NewRedis()

		injector, err := dependency.NewInjector(cfg, database.DbConn, redisClient)
		if err != nil {
			panic(fmt.Sprintf("failed to wire dependencies: %v", err))
		}

		shared = &suite{
			server: httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			db:     database,
			redis:  redisClient,
			ai:     ai,
		}
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
			shared.ai.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Catalog setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a category exists with name "([^"]*)" under "([^"]*)"$`, test.aCategoryExistsWithNameUnder)
	ctx.Given(`^a tag exists with name "([^"]*)"$`, test.aTagExistsWithName)

	// AI provider steps
	ctx.Given(`^the AI provider replies with:$`, test.theAIProviderRepliesWith)
	ctx.Given(`^the AI provider fails with status (\d+)$`, test.theAIProviderFailsWithStatus)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I upload the file "([^"]*)" with source "([^"]*)" and content:$`, test.iUploadTheFileWithSourceAndContent)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// AI provider assertion steps
	ctx.Then(`^the AI provider should have received (\d+) requests?$`, test.theAIProviderShouldHaveReceivedRequests)
	ctx.Then(`^the AI provider request (\d+) should contain "([^"]*)"$`, test.theAIProviderRequestShouldContain)
	ctx.Then(`^the AI provider request (\d+) should have header "([^"]*)" with value "([^"]*)"$`, test.theAIProviderRequestShouldHaveHeader)
	ctx.Then(`^the completion cache should hold (\d+) entr(?:y|ies)$`, test.theCompletionCacheShouldHoldEntries)
}

func (t *testContext) before() error {
	if shared == nil {
		return fmt.Errorf("test suite was not initialized")
	}
	t.suite = shared
	t.uri = shared.server.URL
	t.headers = make(map[string]string)
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.response = nil
	t.ids = make(map[string]uuid.UUID)
	t.lastID = uuid.Nil
	t.lastBatch = ""

	t.ai.Reset()
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}
