package entity

import "time"

// Program es el contenedor de contenido ligado 1:1 a cada Batch (modelo
// "batch-first"): se crea junto con el Batch con Title igual al nombre del
// batch y se renombra cuando el Batch se renombra. El payload de currículo
// es opaco para este núcleo (lo edita el módulo de contenidos).
type Program struct {
	ID             string
	OrganizationID string
	Title          string
	Curriculum     string // JSON opaco; vacío al crear
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
