package clock

import "time"

// Clock abstrae la hora actual para que las ventanas de pronóstico y los ciclos
// de reorden sean deterministas en tests.
type Clock interface {
	Now() time.Time
}

// System es el reloj real del sistema.
type System struct{}

// Now devuelve time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed es un reloj congelado en un instante; para tests.
type Fixed struct {
	T time.Time
}

// Now devuelve siempre el mismo instante.
func (f Fixed) Now() time.Time { return f.T }

// Today trunca la hora del reloj al inicio del día calendario.
func Today(c Clock) time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
