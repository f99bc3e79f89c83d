// Package modules puts the moving parts of a service together.
//
// Modules are started in a multi-stage process and may depend on other
// modules:
//   - Go's init(): register flags
//   - prep: check flags, register config options
//   - start: start actual work, access config
//   - stop: gracefully shut down, after all workers of the module finished
//
// Workers are functions run by a module while catching panics. They receive
// the module context, which is canceled on shutdown. Service workers are
// restarted with a backoff when they fail.
package modules
