package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"dsa-tracker/backend/cache"
	"dsa-tracker/backend/config"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

const adminEmail = "admin@example.com"

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	cfg   *config.Config
	store *cache.MemoryStore
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		ServerPort:      "8080",
		AllowedOrigins:  "*",
		DBDriver:        "sqlite",
		DBPath:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:       "testsecret",
		JWTExpiresIn:    time.Hour,
		AdminEmails:     []string{adminEmail},
		CatalogCacheTTL: 5 * time.Minute,
	}

	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zap.NewNop()
	store := cache.NewMemoryStore()
	app := NewApp(cfg, logger)
	SetupRoutes(app, db, cfg, NewServices(db, cfg, store, logger), logger)

	return &testEnv{app: app, db: db, cfg: cfg, store: store}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dst))
}

func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	status, env := e.do(t, "POST", "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var result struct {
		Token string `json:"token"`
	}
	decode(t, env.Data, &result)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func (e *testEnv) createPattern(t *testing.T, token, name string) uint {
	t.Helper()
	status, env := e.do(t, "POST", "/api/patterns", map[string]string{
		"name":        name,
		"description": name + " problems",
	}, token)
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var pattern struct {
		ID uint `json:"id"`
	}
	decode(t, env.Data, &pattern)
	return pattern.ID
}

func (e *testEnv) createProblem(t *testing.T, token string, patternID uint, title, difficulty string, order int) uint {
	t.Helper()
	status, env := e.do(t, "POST", "/api/problems", map[string]interface{}{
		"title":      title,
		"pattern":    patternID,
		"difficulty": difficulty,
		"order":      order,
	}, token)
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var problem struct {
		ID uint `json:"id"`
	}
	decode(t, env.Data, &problem)
	return problem.ID
}

func TestHealth(t *testing.T) {
	env := setup(t)

	status, body := env.do(t, "GET", "/health", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, body.Success)
}

func TestPanickingHandlerIsRecoveredAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := NewApp(&config.Config{AllowedOrigins: "*"}, zap.New(core))
	app.Get("/explode", func(c *fiber.Ctx) error { panic("kaboom") })

	req := httptest.NewRequest("GET", "/explode", nil)
	req.Header.Set("X-Request-ID", "panic-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)

	entries := logs.FilterField(zap.String("request_id", "panic-1")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "/explode", entries[0].ContextMap()["path"])
}

func TestRegisterAndLogin(t *testing.T) {
	env := setup(t)

	env.register(t, "Ada Lovelace", "Ada@Example.com")

	status, body := env.do(t, "POST", "/api/auth/register", map[string]string{
		"name": "Someone Else", "email": "ada@example.com", "password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.False(t, body.Success)

	status, body = env.do(t, "POST", "/api/auth/register", map[string]string{
		"name": "X", "email": "not-an-email", "password": "123",
	}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	var fields map[string]string
	decode(t, body.Details, &fields)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	status, body = env.do(t, "POST", "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusOK, status)
	var result struct {
		Token string `json:"token"`
		User  struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	decode(t, body.Data, &result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ada@example.com", result.User.Email)
	assert.Equal(t, "ada", result.User.Username)
	assert.Equal(t, "user", result.User.Role)
	assert.NotContains(t, string(body.Data), "password")

	status, _ = env.do(t, "POST", "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, "POST", "/api/auth/login", "{not json", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	env := setup(t)
	userToken := env.register(t, "Regular User", "user@example.com")
	adminToken := env.register(t, "Admin User", adminEmail)

	payload := map[string]string{"name": "Two Pointers", "description": "Converging indices"}

	status, _ := env.do(t, "POST", "/api/patterns", payload, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, "POST", "/api/patterns", payload, "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := env.do(t, "POST", "/api/patterns", payload, userToken)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Forbidden - Admin access required", body.Message)

	status, _ = env.do(t, "POST", "/api/patterns", payload, adminToken)
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = env.do(t, "POST", "/api/patterns", payload, adminToken)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestCatalogRoutes(t *testing.T) {
	env := setup(t)
	admin := env.register(t, "Admin", adminEmail)

	patternID := env.createPattern(t, admin, "Sliding Window")
	second := env.createProblem(t, admin, patternID, "Longest Substring", "Medium", 2)
	first := env.createProblem(t, admin, patternID, "Max Sum Subarray", "Easy", 1)

	status, body := env.do(t, "GET", "/api/patterns", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var patterns []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	decode(t, body.Data, &patterns)
	require.Len(t, patterns, 1)
	assert.Equal(t, "sliding-window", patterns[0].Slug)

	status, _ = env.do(t, "GET", fmt.Sprintf("/api/patterns/%d", patternID), nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = env.do(t, "GET", "/api/patterns/9999", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = env.do(t, "GET", "/api/patterns/abc", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = env.do(t, "GET", fmt.Sprintf("/api/problems/pattern/%d", patternID), nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var byPattern struct {
		Pattern struct {
			Name string `json:"name"`
		} `json:"pattern"`
		Problems []struct {
			ID uint `json:"id"`
		} `json:"problems"`
	}
	decode(t, body.Data, &byPattern)
	assert.Equal(t, "Sliding Window", byPattern.Pattern.Name)
	require.Len(t, byPattern.Problems, 2)
	assert.Equal(t, first, byPattern.Problems[0].ID)
	assert.Equal(t, second, byPattern.Problems[1].ID)

	status, _ = env.do(t, "GET", "/api/problems/pattern/9999", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = env.do(t, "GET", fmt.Sprintf("/api/problems/%d", first), nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var problem struct {
		Title   string `json:"title"`
		Pattern struct {
			Name string `json:"name"`
		} `json:"pattern"`
	}
	decode(t, body.Data, &problem)
	assert.Equal(t, "Max Sum Subarray", problem.Title)
	assert.Equal(t, "Sliding Window", problem.Pattern.Name)

	status, _ = env.do(t, "GET", "/api/problems/9999", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, "POST", "/api/problems", map[string]interface{}{
		"title": "Orphan", "pattern": 9999, "difficulty": "Easy",
	}, admin)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProblemStatsCacheIsInvalidatedOnWrite(t *testing.T) {
	env := setup(t)
	admin := env.register(t, "Admin", adminEmail)
	patternID := env.createPattern(t, admin, "Binary Search")

	var counters struct {
		TotalProblems int `json:"totalProblems"`
		PatternsCount int `json:"patternsCount"`
	}

	status, body := env.do(t, "GET", "/api/problems/stats", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	decode(t, body.Data, &counters)
	assert.Equal(t, 0, counters.TotalProblems)
	assert.Equal(t, 0, counters.PatternsCount)
	assert.Equal(t, 2, env.store.Len())

	env.createProblem(t, admin, patternID, "Search Insert Position", "Easy", 0)
	assert.Equal(t, 0, env.store.Len())

	status, body = env.do(t, "GET", "/api/problems/stats", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	decode(t, body.Data, &counters)
	assert.Equal(t, 1, counters.TotalProblems)
	assert.Equal(t, 1, counters.PatternsCount)
}

func TestProgressRoutes(t *testing.T) {
	env := setup(t)
	admin := env.register(t, "Admin", adminEmail)
	user := env.register(t, "Learner", "learner@example.com")

	patternID := env.createPattern(t, admin, "Graphs")
	emptyPattern := env.createPattern(t, admin, "Tries")
	bfs := env.createProblem(t, admin, patternID, "Rotting Oranges", "Medium", 1)
	env.createProblem(t, admin, patternID, "Course Schedule", "Medium", 2)

	status, _ := env.do(t, "GET", "/api/progress", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := env.do(t, "POST", "/api/progress", map[string]interface{}{
		"problemId": bfs, "solved": true,
	}, user)
	require.Equal(t, fiber.StatusOK, status, body.Message)

	// a second update keeps the single record and leaves solved untouched
	status, _ = env.do(t, "POST", "/api/progress", map[string]interface{}{
		"problemId": bfs, "reviseLater": true,
	}, user)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = env.do(t, "POST", "/api/progress", map[string]interface{}{
		"problemId": bfs, "solved": true, "userId": 42,
	}, user)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, "POST", "/api/progress", map[string]interface{}{
		"problemId": 9999, "solved": true,
	}, user)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, "POST", "/api/progress", map[string]interface{}{"solved": true}, user)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body = env.do(t, "GET", "/api/progress", nil, user)
	require.Equal(t, fiber.StatusOK, status)
	var entries []struct {
		ProblemID   uint `json:"problemId"`
		Solved      bool `json:"solved"`
		ReviseLater bool `json:"reviseLater"`
		Problem     struct {
			Title       string `json:"title"`
			PatternName string `json:"patternName"`
		} `json:"problem"`
	}
	decode(t, body.Data, &entries)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Solved)
	assert.True(t, entries[0].ReviseLater)
	assert.Equal(t, "Rotting Oranges", entries[0].Problem.Title)
	assert.Equal(t, "Graphs", entries[0].Problem.PatternName)

	status, body = env.do(t, "GET", "/api/progress/patterns", nil, user)
	require.Equal(t, fiber.StatusOK, status)
	var perPattern []struct {
		PatternID      uint    `json:"patternId"`
		CompletedCount int     `json:"completedCount"`
		TotalCount     int     `json:"totalCount"`
		Ratio          float64 `json:"ratio"`
	}
	decode(t, body.Data, &perPattern)
	require.Len(t, perPattern, 2)
	byID := map[uint]int{}
	for i, p := range perPattern {
		byID[p.PatternID] = i
	}
	graphs := perPattern[byID[patternID]]
	assert.Equal(t, 1, graphs.CompletedCount)
	assert.Equal(t, 2, graphs.TotalCount)
	assert.InDelta(t, 0.5, graphs.Ratio, 1e-9)
	tries := perPattern[byID[emptyPattern]]
	assert.Equal(t, 0, tries.TotalCount)
	assert.Zero(t, tries.Ratio)
}

func TestProblemNotes(t *testing.T) {
	env := setup(t)
	admin := env.register(t, "Admin", adminEmail)
	user := env.register(t, "Learner", "learner@example.com")
	other := env.register(t, "Other", "other@example.com")

	patternID := env.createPattern(t, admin, "Heaps")
	problemID := env.createProblem(t, admin, patternID, "Kth Largest", "Medium", 1)
	path := fmt.Sprintf("/api/progress/notes/%d", problemID)

	status, body := env.do(t, "GET", path, nil, user)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `""`, string(body.Data))

	status, _ = env.do(t, "PUT", path, map[string]string{"notes": "use a min-heap of size k"}, user)
	require.Equal(t, fiber.StatusOK, status)

	status, body = env.do(t, "GET", path, nil, user)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `"use a min-heap of size k"`, string(body.Data))

	status, body = env.do(t, "GET", path, nil, other)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `""`, string(body.Data))

	status, _ = env.do(t, "PUT", "/api/progress/notes/9999", map[string]string{"notes": "x"}, user)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, "GET", "/api/progress/notes/zero", nil, user)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestProfileSummary(t *testing.T) {
	env := setup(t)
	admin := env.register(t, "Admin", adminEmail)
	user := env.register(t, "Grace Hopper", "grace@example.com")

	arrays := env.createPattern(t, admin, "Arrays")
	dp := env.createPattern(t, admin, "Dynamic Programming")
	easy := env.createProblem(t, admin, arrays, "Two Sum", "Easy", 1)
	hard := env.createProblem(t, admin, dp, "Edit Distance", "hard", 1)
	revise := env.createProblem(t, admin, dp, "Coin Change", "Medium", 2)
	env.createPattern(t, admin, "Empty")

	for _, id := range []uint{easy, hard} {
		status, _ := env.do(t, "POST", "/api/progress", map[string]interface{}{"problemId": id, "solved": true}, user)
		require.Equal(t, fiber.StatusOK, status)
	}
	status, _ := env.do(t, "POST", "/api/progress", map[string]interface{}{"problemId": revise, "reviseLater": true}, user)
	require.Equal(t, fiber.StatusOK, status)

	status, body := env.do(t, "GET", "/api/profile/summary", nil, user)
	require.Equal(t, fiber.StatusOK, status, body.Message)

	var summary struct {
		User struct {
			FullName  string  `json:"fullName"`
			Email     string  `json:"email"`
			AvatarURL *string `json:"avatarUrl"`
		} `json:"user"`
		Account struct {
			PreferredSheet string `json:"preferredSheet"`
		} `json:"account"`
		Progress struct {
			TotalProblems             int     `json:"totalProblems"`
			SolvedProblems            int     `json:"solvedProblems"`
			PendingProblems           int     `json:"pendingProblems"`
			RevisionProblems          int     `json:"revisionProblems"`
			OverallProgressPercentage float64 `json:"overallProgressPercentage"`
		} `json:"progress"`
		Streak struct {
			CurrentStreak  int     `json:"currentStreak"`
			BestStreak     int     `json:"bestStreak"`
			LastSolvedDate *string `json:"lastSolvedDate"`
		} `json:"streak"`
		QuickStats struct {
			PatternsCount int `json:"patternsCount"`
			EasySolved    int `json:"easySolved"`
			MediumSolved  int `json:"mediumSolved"`
			HardSolved    int `json:"hardSolved"`
		} `json:"quickStats"`
	}
	decode(t, body.Data, &summary)

	assert.Equal(t, "Grace Hopper", summary.User.FullName)
	assert.Equal(t, "grace@example.com", summary.User.Email)
	assert.Nil(t, summary.User.AvatarURL)
	assert.Equal(t, "Default", summary.Account.PreferredSheet)

	assert.Equal(t, 3, summary.Progress.TotalProblems)
	assert.Equal(t, 2, summary.Progress.SolvedProblems)
	assert.Equal(t, 1, summary.Progress.PendingProblems)
	assert.Equal(t, 1, summary.Progress.RevisionProblems)
	assert.InDelta(t, 66.67, summary.Progress.OverallProgressPercentage, 1e-9)

	assert.Equal(t, 1, summary.Streak.CurrentStreak)
	assert.Equal(t, 1, summary.Streak.BestStreak)
	require.NotNil(t, summary.Streak.LastSolvedDate)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), *summary.Streak.LastSolvedDate)

	assert.Equal(t, 2, summary.QuickStats.PatternsCount)
	assert.Equal(t, 1, summary.QuickStats.EasySolved)
	assert.Equal(t, 0, summary.QuickStats.MediumSolved)
	assert.Equal(t, 1, summary.QuickStats.HardSolved)
}

func TestProfileSummaryForDeletedUser(t *testing.T) {
	env := setup(t)

	token, err := utils.GenerateJWTToken(9999, env.cfg)
	require.NoError(t, err)

	status, body := env.do(t, "GET", "/api/profile/summary", nil, token)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User not found", body.Message)

	status, _ = env.do(t, "GET", "/api/profile/summary", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
