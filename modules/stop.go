package modules

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/safing/jitterpool/log"
)

var (
	shutdownSignal       = make(chan struct{})
	shutdownSignalClosed = abool.NewBool(false)
)

// ShuttingDown returns a channel read on the global shutdown signal.
func ShuttingDown() <-chan struct{} {
	return shutdownSignal
}

// Shutdown stops all started modules in reverse dependency order. A module
// that fails to stop does not block the others; all errors are returned
// together.
func Shutdown() error {
	if shutdownSignalClosed.SetToIf(false, true) {
		close(shutdownSignal)
	} else {
		// shutdown was already issued
		return errors.New("shutdown already initiated")
	}

	if startComplete.IsSet() {
		log.Warning("modules: starting shutdown...")
	} else {
		log.Warning("modules: aborting, shutting down...")
	}

	modulesLock.RLock()
	errs := stopModules()
	// cancel the contexts of modules that never started
	for _, m := range modules {
		m.cancelCtx()
	}
	modulesLock.RUnlock()

	if errs != nil {
		log.Errorf("modules: shutdown completed with errors: %s", errs)
	} else {
		log.Info("modules: shutdown complete")
	}
	log.Shutdown()

	return errs.ErrorOrNil()
}

func stopModules() *multierror.Error {
	var errs *multierror.Error
	reports := make(chan *report)
	execCnt := 0
	reportCnt := 0

	for {
		for _, m := range modules {
			if m.ReadyToStop() {
				execCnt++
				m.inTransition.Set()

				execM := m
				go func() {
					reports <- &report{
						module: execM,
						err:    execM.shutdown(),
					}
				}()
			}
		}

		// nothing running and nothing left to stop
		if execCnt == reportCnt {
			return errs
		}

		rep := <-reports
		rep.module.inTransition.UnSet()
		if rep.err != nil {
			errs = multierror.Append(errs, fmt.Errorf("modules: could not stop module %s: %w", rep.module.Name, rep.err))
		} else {
			log.Infof("modules: stopped %s", rep.module.Name)
		}
		reportCnt++
		rep.module.Stopped.Set()
	}
}
