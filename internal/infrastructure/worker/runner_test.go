package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/infrastructure/worker"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

func TestRunner_EjecutaLasTareasEncoladas(t *testing.T) {
	runner := worker.NewRunner(2, 8, logger.Nop())
	runner.Start(context.Background())
	defer runner.Stop()

	done := make(chan string, 3)
	for _, name := range []string{"a", "b", "c"} {
		name := name
		err := runner.Submit(worker.Task{Name: name, Fn: func(ctx context.Context) error {
			done <- name
			return nil
		}})
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		select {
		case name := <-done:
			seen[name] = true
		case <-time.After(2 * time.Second):
			t.Fatal("las tareas no se ejecutaron a tiempo")
		}
	}
	assert.Len(t, seen, 3)
}

func TestRunner_ColaLlenaDevuelveError(t *testing.T) {
	// Sin Start: nada consume la cola
	runner := worker.NewRunner(1, 2, logger.Nop())

	noop := worker.Task{Name: "noop", Fn: func(ctx context.Context) error { return nil }}
	require.NoError(t, runner.Submit(noop))
	require.NoError(t, runner.Submit(noop))

	err := runner.Submit(noop)
	assert.ErrorIs(t, err, worker.ErrQueueFull)
}

func TestRunner_UnaTareaFallidaNoDetieneElWorker(t *testing.T) {
	runner := worker.NewRunner(1, 4, logger.Nop())
	runner.Start(context.Background())
	defer runner.Stop()

	done := make(chan struct{})
	require.NoError(t, runner.Submit(worker.Task{Name: "falla", Fn: func(ctx context.Context) error {
		return assert.AnError
	}}))
	require.NoError(t, runner.Submit(worker.Task{Name: "sigue", Fn: func(ctx context.Context) error {
		close(done)
		return nil
	}}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("el worker no siguió después de una tarea fallida")
	}
}

func TestRunner_StopEsperaLaTareaEnCurso(t *testing.T) {
	runner := worker.NewRunner(1, 4, logger.Nop())
	runner.Start(context.Background())

	started := make(chan struct{})
	var finished atomic.Bool
	require.NoError(t, runner.Submit(worker.Task{Name: "lenta", Fn: func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	}}))

	<-started
	runner.Stop()
	assert.True(t, finished.Load())
}

func TestRunner_StopCancelaElContextoDeLosWorkers(t *testing.T) {
	runner := worker.NewRunner(1, 4, logger.Nop())
	runner.Start(context.Background())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	require.NoError(t, runner.Submit(worker.Task{Name: "bloqueada", Fn: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}}))

	<-started
	runner.Stop()

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("el contexto de la tarea no se canceló en Stop")
	}
}
