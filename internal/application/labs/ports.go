package labs

import (
	"context"
	"time"
)

// Session instancia de laboratorio aprovisionada por el proveedor externo.
type Session struct {
	URL       string
	ExpiresAt time.Time
}

// Provisioner puerto hacia la API externa de aprovisionamiento de labs:
// dado un blueprint y una duración devuelve la URL de la instancia y su
// expiración, o falla. Este núcleo NO la reimplementa; la provee el
// sistema circundante (hay un adaptador HTTP en infrastructure/labs).
type Provisioner interface {
	Provision(ctx context.Context, blueprintID string, duration time.Duration) (*Session, error)
}
