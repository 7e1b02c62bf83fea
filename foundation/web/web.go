package web

import (
	"context"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements. The framework
// owns response writing on error; handlers never panic the request goroutine.
type Handler func(c *Context) error

// Middleware wraps a Handler with pre/post processing.
type Middleware func(Handler) Handler

// App is the entry point for the web application. It wraps gin so the rest of
// the code base only deals with *Context handlers.
type App struct {
	*gin.Engine
	shutdown chan os.Signal
}

func NewApp(shutdown chan os.Signal) *App {
	return &App{
		Engine:   gin.New(),
		shutdown: shutdown,
	}
}

// SignalShutdown gracefully shuts the whole service down.
func (a *App) SignalShutdown() {
	a.shutdown <- syscall.SIGTERM
}

func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	// Wrap in reverse order so the first middleware runs first.
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}
	return handler
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)

	h := func(c *gin.Context) {
		ctx := &Context{
			Context: c,
			Ctx:     context.WithValue(c.Request.Context(), KeyValues, &Values{}),
		}

		if err := handler(ctx); err != nil {
			// The handler could not even respond. Nothing left to do but
			// bring the service down.
			a.SignalShutdown()
		}
	}

	a.Engine.Handle(method, path, h)
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle("GET", path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle("POST", path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle("PUT", path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle("PATCH", path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle("DELETE", path, handler, mw...)
}

type ctxKey int

// KeyValues is how request values are stored/retrieved.
const KeyValues ctxKey = 1

// Values carries information about each request.
type Values struct {
	StatusCode int
}
