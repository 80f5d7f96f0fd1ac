package mazeapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
)

const maxStreamDelay = time.Second

// StreamRequest adds pacing to a GenerateRequest.
type StreamRequest struct {
	GenerateRequest
	DelayMillis int `form:"delay_ms"`
}

// stream upgrades to a websocket and replays the generation one carved passage at a
// time, followed by a done event holding the finished maze.
func (c *Controller) stream(ctx *gin.Context) {
	var request StreamRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := request.toDomain()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	delay := min(time.Duration(max(request.DelayMillis, 0))*time.Millisecond, maxStreamDelay)

	record, edges, err := c.mazeService.Trace(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, describeRequest(req), err)
		return
	}

	conn, err := websocket.Accept(ctx.Writer, ctx.Request, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		c.logger.Warning(fmt.Sprintf("accepting carve stream: %v", err))
		return
	}
	defer conn.CloseNow()

	// Reading is only needed to notice the peer going away.
	streamCtx := conn.CloseRead(ctx.Request.Context())

	for _, e := range edges {
		event := CarveEvent{Type: "carve", From: toPos(e.A), To: toPos(e.B)}
		if err := wsjson.Write(streamCtx, conn, event); err != nil {
			c.logger.Info(fmt.Sprintf("carve stream closed early: %v", err))
			return
		}
		if delay > 0 && !sleep(streamCtx, delay) {
			return
		}
	}

	if err := wsjson.Write(streamCtx, conn, DoneEvent{Type: "done", Maze: toResponse(record, false)}); err != nil {
		c.logger.Info(fmt.Sprintf("carve stream closed early: %v", err))
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
