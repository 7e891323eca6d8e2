package lsp

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/lsp/methods/workspace"
	"bennypowers.dev/classwrap/lsp/types"
	"github.com/tliron/glsp"
)

// requestTimeout bounds the host formatter calls of one request
const requestTimeout = 30 * time.Second

// method wraps an LSP handler that returns (result, error) with middleware
// Returns the underlying function type so it's compatible with protocol.Handler field types
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", methodName)
		bound, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		req := types.NewRequestContext(s, ctx).WithContext(bound)
		result, err = handler(req, params)
		return result, finish(req, methodName, err)
	}
}

// notify wraps an LSP notification handler that returns only error
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		return finish(req, methodName, handler(req, params))
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		return finish(req, methodName, handler(req))
	}
}

// recovered turns a handler panic into an error so that one bad document
// does not take the server down
func recovered(ctx *glsp.Context, methodName string, r any) error {
	log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
	workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
	return fmt.Errorf("internal error in %s", methodName)
}

// finish logs the outcome of a handler and wraps its error with the method
// name. Warnings are reported only when the handler succeeded.
func finish(req *types.RequestContext, methodName string, err error) error {
	if err != nil {
		workspace.LogError(req.GLSP, "%s: %v", methodName, err)
		return fmt.Errorf("%s: %w", methodName, err)
	}
	for _, w := range req.Warnings() {
		workspace.LogWarning(req.GLSP, "%s: %v", methodName, w)
	}
	log.Debug("%s completed successfully", methodName)
	return nil
}
