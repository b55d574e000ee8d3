package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// ErrQueueFull se devuelve cuando la cola de tareas está llena: el llamador
// decide si reintenta o responde ocupado.
var ErrQueueFull = errors.New("cola de tareas llena")

// Task una tarea nombrada a ejecutar en segundo plano.
type Task struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Runner ejecuta tareas en segundo plano con un pool acotado de workers.
// Las corridas de pronóstico y exportación se despachan aquí para que el
// handler HTTP responda de inmediato.
type Runner struct {
	tasks   chan Task
	workers int
	log     *logger.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewRunner crea un runner con la cantidad de workers y capacidad de cola
// dadas. Valores no positivos usan 2 workers y cola de 16.
func NewRunner(workers, queueSize int, log *logger.Logger) *Runner {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Runner{
		tasks:   make(chan Task, queueSize),
		workers: workers,
		log:     log,
	}
}

// Start lanza los workers. El contexto derivado se cancela en Stop.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.work(ctx, i)
	}
	r.log.Info().Int("workers", r.workers).Msg("runner de tareas iniciado")
}

// Submit encola una tarea sin bloquear. Devuelve ErrQueueFull si no hay lugar.
func (r *Runner) Submit(task Task) error {
	select {
	case r.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop cancela el contexto de los workers y espera a que terminen la tarea
// en curso. Las tareas encoladas sin empezar se descartan.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	r.log.Info().Msg("runner de tareas detenido")
}

func (r *Runner) work(ctx context.Context, id int) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-r.tasks:
			start := time.Now()
			err := task.Fn(ctx)
			elapsed := time.Since(start)
			if err != nil {
				r.log.Error().
					Err(err).
					Str("tarea", task.Name).
					Int("worker", id).
					Dur("duracion", elapsed).
					Msg("tarea fallida")
				continue
			}
			r.log.Info().
				Str("tarea", task.Name).
				Int("worker", id).
				Dur("duracion", elapsed).
				Msg("tarea completada")
		}
	}
}
