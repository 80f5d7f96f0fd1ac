package mazeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	pb "github.com/beka-birhanu/vinom-maze/pb_encoder"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type memoryRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
}

func (r *memoryRepo) Save(_ context.Context, record *dmn.MazeRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *memoryRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	if record, ok := r.records[id]; ok {
		return record, nil
	}
	return nil, dmn.ErrMazeNotFound
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return dmn.ErrMazeNotFound
	}
	delete(r.records, id)
	return nil
}

type nopLogger struct{ errors []string }

func (l *nopLogger) Info(string)      {}
func (l *nopLogger) Warning(string)   {}
func (l *nopLogger) Error(msg string) { l.errors = append(l.errors, msg) }

func newTestEngine(t *testing.T) (*gin.Engine, *memoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &memoryRepo{records: map[uuid.UUID]*dmn.MazeRecord{}}
	logger := &nopLogger{}
	mazes, err := service.NewMazeService(nil, repo, &pb.Protobuf{}, logger, &service.MazeOptions{MaxDimension: 30})
	require.NoError(t, err)
	controller, err := NewController(mazes, &pb.Protobuf{}, logger)
	require.NoError(t, err)

	engine := gin.New()
	group := engine.Group("/api/v1")
	controller.RegisterPublic(group)
	controller.RegisterProtected(group)
	return engine, repo
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestController_Algorithms(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := do(engine, http.MethodGet, "/api/v1/algorithms", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp AlgorithmsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"backtracking", "prims", "ellers", "growing-tree"}, resp.Algorithms)
	assert.Equal(t, []string{"newest", "random", "mixed"}, resp.Policies)
	assert.Contains(t, resp.Formats, "svg")
}

func TestController_Generate(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("JSON", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/mazes/generate?algorithm=ellers&width=6&height=4&seed="+testSeed, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.ID)
		assert.Nil(t, resp.CreatedAt)
		assert.Equal(t, "ellers", resp.Algorithm)
		assert.Equal(t, testSeed, resp.Seed)
		assert.Equal(t, 6, resp.Width)
		assert.Equal(t, 4, resp.Height)
		assert.Equal(t, PosDTO{0, 0}, resp.Start)
		assert.Equal(t, PosDTO{5, 3}, resp.Goal)
		require.Len(t, resp.Cells, 24)

		cells := make([]uint8, len(resp.Cells))
		for i, c := range resp.Cells {
			cells[i] = uint8(c)
		}
		_, err := maze.FromCells(6, 4, maze.Coordinates{}, maze.Coordinates{X: 5, Y: 3}, cells)
		assert.NoError(t, err)
	})

	t.Run("Same seed, same maze", func(t *testing.T) {
		path := "/api/v1/mazes/generate?algorithm=growing-tree&policy=random&width=9&height=9&phrase=hello"
		first := do(engine, http.MethodGet, path, "")
		second := do(engine, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("Defaults", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/mazes/generate", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "backtracking", resp.Algorithm)
		assert.Equal(t, 10, resp.Width)
		assert.Equal(t, PosDTO{0, 9}, resp.Goal)
		assert.Len(t, resp.Seed, 64)
	})

	t.Run("Text", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/mazes/generate?width=3&height=2&format=text&seed="+testSeed, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, testSeed, w.Header().Get(SeedHeader))
		assert.Len(t, strings.Split(strings.TrimSuffix(w.Body.String(), "\n"), "\n"), 5)
	})

	t.Run("SVG", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/mazes/generate?format=svg", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<svg")
	})

	t.Run("Protobuf", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/mazes/generate?algorithm=prims&width=5&height=7&format=pb", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-protobuf", w.Header().Get("Content-Type"))

		m, err := (&pb.Protobuf{}).UnmarshalMaze(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 5, m.Width())
		assert.Equal(t, 7, m.Height())
	})

	t.Run("HTML", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/api/v1/mazes/generate?width=4&height=4&format=html", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
		assert.Contains(t, body, "<title>backtracking maze 4x4</title>")
		assert.Contains(t, body, "<svg")
		assert.NotContains(t, body, "<?xml")
	})

	t.Run("Bad requests", func(t *testing.T) {
		for _, query := range []string{
			"algorithm=kruskal",
			"width=0",
			"width=31",
			"height=-2",
			"width=abc",
			"seed=zz",
			"seed=" + testSeed + "&phrase=x",
			"algorithm=ellers&merge_probability=1.5",
			"algorithm=growing-tree&policy=oldest",
			"format=gif",
		} {
			w := do(engine, http.MethodGet, "/api/v1/mazes/generate?"+query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
	})
}

func TestController_Persistence(t *testing.T) {
	engine, repo := newTestEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/mazes", `{"algorithm":"prims","width":5,"height":5,"phrase":"stored"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved MazeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)
	assert.NotNil(t, saved.CreatedAt)
	assert.Equal(t, "/api/v1/mazes/"+saved.ID, w.Header().Get("Location"))
	assert.Len(t, repo.records, 1)

	w = do(engine, http.MethodGet, "/api/v1/mazes/"+saved.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var loaded MazeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loaded))
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, saved.Cells, loaded.Cells)

	w = do(engine, http.MethodGet, "/api/v1/mazes/"+saved.ID+"?format=text", "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNoContent, do(engine, http.MethodDelete, "/api/v1/mazes/"+saved.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/api/v1/mazes/"+saved.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodDelete, "/api/v1/mazes/"+saved.ID, "").Code)

	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodGet, "/api/v1/mazes/not-an-id", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodPost, "/api/v1/mazes", `{"width":"wide"}`).Code)
}
