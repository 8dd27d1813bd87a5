package checker

import (
	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/pipeline"
)

// CheckerProcessor runs the tag checker as a pipeline stage. The result
// of the most recent run is kept on the processor, since the pipeline
// context only carries diagnostics.
type CheckerProcessor struct {
	Options Options
	Result  *Result
}

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok || program == nil {
		return ctx
	}
	// Parse errors mean the tree may be arbitrarily incomplete; the
	// checker still runs so one pass reports both stages.
	cp.Result = New(cp.Options).Check(program)
	ctx.Errors = append(ctx.Errors, cp.Result.Diagnostics...)
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
