// Package integration provides end-to-end integration tests for the API.
// Tests the full account, verification and document sharing flows against
// both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/docshare/internal/app"
	authDomain "github.com/allisson/docshare/internal/auth/domain"
	"github.com/allisson/docshare/internal/config"
	docDTO "github.com/allisson/docshare/internal/document/http/dto"
	"github.com/allisson/docshare/internal/testutil"
	userDTO "github.com/allisson/docshare/internal/user/http/dto"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response status and body.
// An empty token sends the request anonymously.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	token string,
) (int, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NoError(t, resp.Body.Close())

	return resp.StatusCode, respBody
}

// setupIntegrationTest initializes the container and an httptest server with
// the full route table.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:                dbDriver,
		DBConnectionString:      dsn,
		DBMaxOpenConnections:    10,
		DBMaxIdleConnections:    5,
		DBConnMaxLifetime:       time.Hour,
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "error",
		TokenTTL:                time.Hour,
		TokenThrottleDailyLimit: 3,
		RateLimitEnabled:        false,
		MetricsEnabled:          false,
		WorkerInterval:          time.Second,
		WorkerBatchSize:         50,
		WorkerMaxRetries:        3,
		WorkerRetryInterval:     time.Second,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    httptest.NewServer(handler),
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}
	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}
	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

// registerUser registers a user through the API and returns the response.
func (ctx *integrationTestContext) registerUser(
	t *testing.T,
	username, email, password string,
) userDTO.UserResponse {
	t.Helper()

	status, body := ctx.makeRequest(t, http.MethodPost, "/v1/users", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, status, "register failed: %s", body)

	var user userDTO.UserResponse
	require.NoError(t, json.Unmarshal(body, &user))
	return user
}

// verifyUser confirms the user's email through the API. The verification
// token is fetched via the token use case, standing in for the emailed link.
func (ctx *integrationTestContext) verifyUser(t *testing.T, userID string) {
	t.Helper()

	tokenUseCase, err := ctx.container.TokenUseCase()
	require.NoError(t, err)

	token, err := tokenUseCase.CreateThrottled(
		context.Background(),
		uuid.MustParse(userID),
		authDomain.VerificationToken,
	)
	require.NoError(t, err)

	status, body := ctx.makeRequest(t, http.MethodPut, "/v1/users/verification", map[string]string{
		"token": token.Value,
	}, "")
	require.Equal(t, http.StatusOK, status, "verification failed: %s", body)
}

// loginUser authenticates through the API and returns the authorization token.
func (ctx *integrationTestContext) loginUser(t *testing.T, email, password string) string {
	t.Helper()

	status, body := ctx.makeRequest(t, http.MethodPost, "/v1/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, status, "login failed: %s", body)

	var login userDTO.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestIntegrationPostgres(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	runAPITests(t, "postgres")
}

func TestIntegrationMySQL(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	runAPITests(t, "mysql")
}

// runAPITests drives the full account and document sharing lifecycle.
func runAPITests(t *testing.T, dbDriver string) {
	ctx := setupIntegrationTest(t, dbDriver)
	defer teardownIntegrationTest(t, ctx)

	const password = "Str0ng!Password"

	alice := ctx.registerUser(t, "alice", "alice@example.com", password)
	assert.Equal(t, "alice", alice.Username)
	assert.False(t, alice.Verified)

	t.Run("RegisterDuplicateEmail", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodPost, "/v1/users", map[string]string{
			"username": "alice2",
			"email":    "ALICE@example.com",
			"password": password,
		}, "")
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodPost, "/v1/login", map[string]string{
			"email":    "alice@example.com",
			"password": "Wr0ng!Password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	aliceToken := ctx.loginUser(t, "alice@example.com", password)

	t.Run("RepeatedLoginsIssueFreshTokens", func(t *testing.T) {
		// More logins than the daily token-request limit, each with its own
		// bearer value: the limiter covers the email flows, not login.
		seen := map[string]bool{aliceToken: true}
		for i := 0; i < 4; i++ {
			seen[ctx.loginUser(t, "alice@example.com", password)] = true
		}
		assert.Len(t, seen, 5)
	})

	t.Run("Me", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodGet, "/v1/me", nil, aliceToken)
		require.Equal(t, http.StatusOK, status)

		var me userDTO.MeResponse
		require.NoError(t, json.Unmarshal(body, &me))
		assert.Equal(t, alice.ID, me.ID)
		assert.Equal(t, "alice@example.com", me.Email)
		assert.Empty(t, me.DocumentIDs)
	})

	t.Run("MeWithoutToken", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodGet, "/v1/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("PublicProfileHidesEmail", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodGet, "/v1/users/"+alice.ID, nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "alice")
		assert.NotContains(t, string(body), "alice@example.com")
	})

	t.Run("UnverifiedCannotCreateDocument", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodPost, "/v1/documents", map[string]interface{}{
			"name":    "early",
			"privacy": "private",
			"content": map[string]string{"title": "too soon"},
		}, aliceToken)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	ctx.verifyUser(t, alice.ID)

	t.Run("MeShowsVerified", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodGet, "/v1/me", nil, aliceToken)
		require.Equal(t, http.StatusOK, status)

		var me userDTO.MeResponse
		require.NoError(t, json.Unmarshal(body, &me))
		assert.True(t, me.Verified)
	})

	bob := ctx.registerUser(t, "bob", "bob@example.com", password)
	ctx.verifyUser(t, bob.ID)
	bobToken := ctx.loginUser(t, "bob@example.com", password)

	var doc docDTO.DocumentResponse

	t.Run("CreatePrivateDocument", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodPost, "/v1/documents", map[string]interface{}{
			"name":    "design-notes",
			"privacy": "private",
			"content": map[string]string{"title": "v1"},
		}, aliceToken)
		require.Equal(t, http.StatusCreated, status, "create document failed: %s", body)

		require.NoError(t, json.Unmarshal(body, &doc))
		assert.Equal(t, "design-notes", doc.Name)
		assert.Equal(t, "private", doc.Privacy)
		assert.Equal(t, int64(1), doc.Version)
		require.Len(t, doc.Members, 1)
		assert.Equal(t, alice.ID, doc.Members[0].UserID)
		assert.Equal(t, "admin", doc.Members[0].Access)
	})

	docPath := "/v1/documents/" + doc.ID

	t.Run("PrivateDocumentHiddenFromOthers", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodGet, docPath, nil, "")
		assert.Equal(t, http.StatusUnauthorized, status, "anonymous caller")

		status, _ = ctx.makeRequest(t, http.MethodGet, docPath, nil, bobToken)
		assert.Equal(t, http.StatusUnauthorized, status, "non-member caller")

		status, body := ctx.makeRequest(t, http.MethodGet, "/v1/documents", nil, "")
		require.Equal(t, http.StatusOK, status)

		var list docDTO.ListDocumentsResponse
		require.NoError(t, json.Unmarshal(body, &list))
		assert.Empty(t, list.Data, "private documents never appear in the public list")
	})

	t.Run("DocumentAppearsInOwnerMemberships", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodGet, "/v1/me", nil, aliceToken)
		require.Equal(t, http.StatusOK, status)

		var me userDTO.MeResponse
		require.NoError(t, json.Unmarshal(body, &me))
		assert.Contains(t, me.DocumentIDs, doc.ID)
	})

	t.Run("GrantWriteAccess", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodPut,
			fmt.Sprintf("%s/members/%s", docPath, bob.ID),
			map[string]string{"access": "write"},
			aliceToken,
		)
		require.Equal(t, http.StatusOK, status, "add member failed: %s", body)

		var updated docDTO.DocumentResponse
		require.NoError(t, json.Unmarshal(body, &updated))
		require.Len(t, updated.Members, 2)
		assert.Equal(t, "write", updated.Members[1].Access)
	})

	t.Run("MemberCanReadAndWrite", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodGet, docPath, nil, bobToken)
		assert.Equal(t, http.StatusOK, status)

		status, body := ctx.makeRequest(t, http.MethodPut, docPath, map[string]interface{}{
			"content": map[string]string{"title": "v2"},
		}, bobToken)
		require.Equal(t, http.StatusOK, status, "update content failed: %s", body)

		var updated docDTO.DocumentResponse
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.Equal(t, int64(2), updated.Version)
		assert.Contains(t, string(updated.Content), "v2")
	})

	t.Run("WriterCannotChangePrivacy", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodPut, docPath+"/privacy", map[string]string{
			"privacy": "public",
		}, bobToken)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("AdminMakesDocumentPublic", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodPut, docPath+"/privacy", map[string]string{
			"privacy": "public",
		}, aliceToken)
		require.Equal(t, http.StatusOK, status, "privacy change failed: %s", body)

		status, _ = ctx.makeRequest(t, http.MethodGet, docPath, nil, "")
		assert.Equal(t, http.StatusOK, status, "public documents are readable anonymously")

		status, listBody := ctx.makeRequest(t, http.MethodGet, "/v1/documents", nil, "")
		require.Equal(t, http.StatusOK, status)

		var list docDTO.ListDocumentsResponse
		require.NoError(t, json.Unmarshal(listBody, &list))
		require.Len(t, list.Data, 1)
		assert.Equal(t, doc.ID, list.Data[0].ID)
	})

	t.Run("RemoveMember", func(t *testing.T) {
		status, body := ctx.makeRequest(t, http.MethodDelete,
			fmt.Sprintf("%s/members/%s", docPath, bob.ID), nil, aliceToken)
		require.Equal(t, http.StatusOK, status, "remove member failed: %s", body)

		// The document is public now, so bob still reads but no longer writes
		status, _ = ctx.makeRequest(t, http.MethodGet, docPath, nil, bobToken)
		assert.Equal(t, http.StatusOK, status)

		status, _ = ctx.makeRequest(t, http.MethodPut, docPath, map[string]interface{}{
			"content": map[string]string{"title": "v3"},
		}, bobToken)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("DeleteDocument", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodDelete, docPath, nil, aliceToken)
		assert.Equal(t, http.StatusNoContent, status)

		status, _ = ctx.makeRequest(t, http.MethodGet, docPath, nil, aliceToken)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("PasswordReset", func(t *testing.T) {
		const newPassword = "N3w!Password"

		status, _ := ctx.makeRequest(t, http.MethodPost, "/v1/users/password", map[string]string{
			"email": "alice@example.com",
		}, "")
		require.Equal(t, http.StatusAccepted, status)

		// Unknown addresses get the same response so the API never confirms
		// whether an account exists
		status, _ = ctx.makeRequest(t, http.MethodPost, "/v1/users/password", map[string]string{
			"email": "nobody@example.com",
		}, "")
		require.Equal(t, http.StatusAccepted, status)

		tokenUseCase, err := ctx.container.TokenUseCase()
		require.NoError(t, err)

		resetToken, err := tokenUseCase.CreateThrottled(
			context.Background(),
			uuid.MustParse(alice.ID),
			authDomain.PasswordResetToken,
		)
		require.NoError(t, err)

		status, body := ctx.makeRequest(t, http.MethodPut, "/v1/users/password", map[string]string{
			"token":    resetToken.Value,
			"password": newPassword,
		}, "")
		require.Equal(t, http.StatusOK, status, "password reset failed: %s", body)

		// The reset invalidates every outstanding token
		status, _ = ctx.makeRequest(t, http.MethodGet, "/v1/me", nil, aliceToken)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = ctx.makeRequest(t, http.MethodPost, "/v1/login", map[string]string{
			"email":    "alice@example.com",
			"password": password,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, status, "old password no longer works")

		aliceToken = ctx.loginUser(t, "alice@example.com", newPassword)
	})

	t.Run("DeleteAccount", func(t *testing.T) {
		status, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/me", nil, bobToken)
		assert.Equal(t, http.StatusNoContent, status)

		status, _ = ctx.makeRequest(t, http.MethodGet, "/v1/me", nil, bobToken)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = ctx.makeRequest(t, http.MethodPost, "/v1/login", map[string]string{
			"email":    "bob@example.com",
			"password": password,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
