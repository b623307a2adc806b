// Package terminal implements the command interpreter behind a terminal window.
//
// An Interpreter owns one transcript. Each submitted line is echoed, matched
// against the local grammar and, when nothing matches, handed to a Translator
// for natural-language translation. Translator failures are downgraded to a
// single error line and never escape the interpreter.
//
// Features:
//   - Local grammar (help, whoami, education, experience, skills, projects,
//     project describe/run, clear, contact)
//   - Translation fallback with suggestions
//   - Single in-flight task per terminal, returned as a Task future
//   - Window-open requests through a fire-and-forget callback
//
// Example Usage:
//
//	interp := terminal.NewInterpreter(repo, translator, func(app types.App) {
//	    manager.Open(app)
//	})
//	task, err := interp.Submit(ctx, "project run xshop")
//	if errors.Is(err, terminal.ErrBusy) {
//	    // previous command still running
//	}
//	<-task.Done()
package terminal
