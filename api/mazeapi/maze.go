package mazeapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/api/identity"
	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/beka-birhanu/vinom-mazesolver/generator"
	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/beka-birhanu/vinom-mazesolver/mazeio"
	"github.com/beka-birhanu/vinom-mazesolver/service"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 1024
	// bodySlack covers JSON quoting, separators and protobuf framing.
	bodySlack = 4096
)

// MazeController serves maze generation and solving.
type MazeController struct {
	solver       i.MazeSolver
	generator    i.MazeGenerator
	logger       i.Logger
	maxDimension int
	maxBodyBytes int64
}

// NewMazeController initializes a MazeController. Submitted mazes taller or
// wider than maxDimension are refused before they are built.
func NewMazeController(solver i.MazeSolver, gen i.MazeGenerator, logger i.Logger, maxDimension int) (*MazeController, error) {
	if solver == nil || gen == nil || logger == nil {
		return nil, errors.New("maze controller dependencies cannot be nil")
	}
	if maxDimension <= 0 || maxDimension > mazeio.MaxDimension {
		maxDimension = defaultMaxDimension
	}
	return &MazeController{
		solver:       solver,
		generator:    gen,
		logger:       logger,
		maxDimension: maxDimension,
		maxBodyBytes: int64(maxDimension)*int64(maxDimension+4) + bodySlack,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/mazes/generate", mc.generate)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/solve", mc.solve)
		mazes.GET("/solutions/:ID", mc.solution)
	}
}

// generate builds a random solvable maze.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}

	m, err := mc.generator.Generate(request.Width, request.Height, seed)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &MazeResponse{
		Height: m.Height(),
		Width:  m.Width(),
		Seed:   seed,
		Rows:   m.Rows(),
	})
}

// solve solves a maze sent as JSON rows or as a protobuf Maze message. The
// response uses the request encoding.
func (mc *MazeController) solve(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, mc.maxBodyBytes)
	if ctx.ContentType() == mazeio.ContentTypeProtobuf {
		mc.solveProtobuf(ctx)
		return
	}

	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		mc.failBody(ctx, err)
		return
	}
	if err := mc.checkRows(request.Rows); err != nil {
		mc.fail(ctx, err)
		return
	}

	m, err := mazeio.ParseRows(request.Rows)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	sol, err := mc.solver.Solve(ctx.Request.Context(), m)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	mc.logger.Info(fmt.Sprintf("client %s solved maze: ID=%s", ctx.GetString(identity.ContextClient), sol.ID))
	ctx.JSON(http.StatusOK, newSolutionResponse(sol, m))
}

func (mc *MazeController) solveProtobuf(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		mc.failBody(ctx, err)
		return
	}

	m, err := mazeio.UnmarshalMaze(body)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	sol, err := mc.solver.Solve(ctx.Request.Context(), m)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, mazeio.ContentTypeProtobuf, mazeio.MarshalSolution(newWireSolution(sol)))
}

// solution retrieves a stored solution.
func (mc *MazeController) solution(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	sol, err := mc.solver.ByID(ctx.Request.Context(), ID)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSolutionResponse(sol, nil))
}

func (mc *MazeController) checkRows(rows []string) error {
	if len(rows) > mc.maxDimension {
		return fmt.Errorf("%w: %d rows, limit %d", service.ErrMazeTooLarge, len(rows), mc.maxDimension)
	}
	for r, row := range rows {
		if len(row) > mc.maxDimension {
			return fmt.Errorf("%w: row %d has %d cells, limit %d", service.ErrMazeTooLarge, r, len(row), mc.maxDimension)
		}
	}
	return nil
}

// failBody answers a request whose body could not be read or decoded.
func (mc *MazeController) failBody(ctx *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (mc *MazeController) fail(ctx *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		mc.logger.Error(fmt.Sprintf("%s %s: %s", ctx.Request.Method, ctx.FullPath(), err))
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, dmn.ErrSolutionNotFound):
		return http.StatusNotFound
	case errors.Is(err, dmn.ErrSolutionConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrMazeTooLarge),
		errors.Is(err, mazeio.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, maze.ErrInvalidArgument),
		errors.Is(err, mazeio.ErrUnknownSymbol),
		errors.Is(err, mazeio.ErrMalformed),
		errors.Is(err, generator.ErrInvalidDimensions):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
