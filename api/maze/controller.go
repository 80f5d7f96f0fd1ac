// Package mazeapi exposes maze generation, rendering and storage over HTTP.
package mazeapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Output formats selected with the format query parameter.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatSVG  = "svg"
	FormatPB   = "pb"
	FormatHTML = "html"
)

var formats = []string{FormatJSON, FormatText, FormatSVG, FormatPB, FormatHTML}

// SeedHeader carries the seed of a rendered maze for non JSON formats.
const SeedHeader = "X-Maze-Seed"

// Controller serves mazes.
type Controller struct {
	mazeService i.MazeService
	encoder     i.MazeEncoder
	logger      i.Logger
}

// NewController initializes a maze Controller.
func NewController(ms i.MazeService, encoder i.MazeEncoder, logger i.Logger) (*Controller, error) {
	if ms == nil || encoder == nil || logger == nil {
		return nil, errors.New("maze controller: missing dependency")
	}
	return &Controller{
		mazeService: ms,
		encoder:     encoder,
		logger:      logger,
	}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/algorithms", c.algorithms)

	mazes := route.Group("/mazes")
	{
		mazes.GET("/generate", c.generate)
		mazes.GET("/stream", c.stream)
		mazes.GET("/:ID", c.byID)
	}
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", c.save)
		mazes.DELETE("/:ID", c.delete)
	}
}

// algorithms lists what the generate endpoints accept.
func (c *Controller) algorithms(ctx *gin.Context) {
	resp := AlgorithmsResponse{
		Policies: []string{
			maze.PolicyNewest.String(),
			maze.PolicyRandom.String(),
			maze.PolicyMixed.String(),
		},
		Formats: formats,
	}
	for _, alg := range maze.Algorithms() {
		resp.Algorithms = append(resp.Algorithms, string(alg))
	}
	ctx.JSON(http.StatusOK, resp)
}

// generate builds a maze from query parameters without storing it.
func (c *Controller) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := request.toDomain()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := c.mazeService.Generate(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, describeRequest(req), err)
		return
	}
	c.render(ctx, record, false)
}

// byID serves a stored maze.
func (c *Controller) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	record, err := c.mazeService.ByID(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, "maze "+id.String(), err)
		return
	}
	c.render(ctx, record, true)
}

// save generates a maze from the JSON body and stores it.
func (c *Controller) save(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := request.toDomain()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := c.mazeService.Save(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, describeRequest(req), err)
		return
	}
	ctx.Header("Location", ctx.Request.URL.Path+"/"+record.ID.String())
	ctx.JSON(http.StatusCreated, toResponse(record, true))
}

// delete removes a stored maze.
func (c *Controller) delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := c.mazeService.Delete(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, "maze "+id.String(), err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// render writes the record in the format named by the query.
func (c *Controller) render(ctx *gin.Context, record *dmn.MazeRecord, persisted bool) {
	format := ctx.DefaultQuery("format", FormatJSON)
	if format == FormatJSON {
		ctx.JSON(http.StatusOK, toResponse(record, persisted))
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
		err         error
	)
	switch format {
	case FormatText:
		contentType = "text/plain; charset=utf-8"
		err = maze.WriteText(&buf, record.Maze)
	case FormatSVG:
		contentType = "image/svg+xml"
		err = maze.WriteSVG(&buf, record.Maze, maze.DefaultSVGOptions())
	case FormatPB:
		contentType = c.encoder.ContentType()
		var b []byte
		b, err = c.encoder.MarshalMaze(record.Maze)
		buf.Write(b)
	case FormatHTML:
		contentType = "text/html; charset=utf-8"
		err = renderPage(ctx.Request.Context(), &buf, record)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
		return
	}
	if err != nil {
		c.fail(ctx, "rendering "+format, err)
		return
	}

	ctx.Header(SeedHeader, record.Seed.String())
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}

// fail maps service errors to responses; only unexpected ones are logged.
func (c *Controller) fail(ctx *gin.Context, what string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		c.logger.Error(fmt.Sprintf("%s: %v", what, err))
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, maze.ErrInvalidSize),
		errors.Is(err, maze.ErrInvalidOptions),
		errors.Is(err, maze.ErrUnknownAlgorithm),
		errors.Is(err, service.ErrDimensionTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, dmn.ErrMazeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoRepo):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
