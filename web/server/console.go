package server

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

// ConsoleLine is one line of renderer output forwarded to the browser.
// Seq starts at 1 and has gaps where lines were dropped.
type ConsoleLine struct {
	RenderID string    `json:"renderId"`
	Seq      int64     `json:"seq"`
	Text     string    `json:"text"`
	Time     time.Time `json:"time"`
}

// RenderConsole is the core.Logger handed to a web render. Every line goes to
// glog; lines also go to the stream unless it is full, in which case they
// are counted as dropped.
type RenderConsole struct {
	renderID string
	lines    chan<- ConsoleLine
	seq      atomic.Int64
	dropped  atomic.Int64
}

func NewRenderConsole(renderID string, lines chan<- ConsoleLine) *RenderConsole {
	return &RenderConsole{renderID: renderID, lines: lines}
}

// Printf logs one line. Tile workers call it concurrently.
func (c *RenderConsole) Printf(format string, args ...interface{}) {
	text := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	seq := c.seq.Add(1)
	glog.Infof("[%s] %s", c.renderID, text)

	if c.lines == nil {
		return
	}
	select {
	case c.lines <- ConsoleLine{RenderID: c.renderID, Seq: seq, Text: text, Time: time.Now()}:
	default:
		c.dropped.Add(1)
	}
}

// Dropped returns how many lines never reached the stream
func (c *RenderConsole) Dropped() int64 {
	return c.dropped.Load()
}
