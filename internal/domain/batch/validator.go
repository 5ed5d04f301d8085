// Package batch contiene las reglas de admisión de configuración de un
// Batch: qué combinaciones de features (training, labs, assessments) son
// legales y cómo se normaliza la configuración de evaluación. Lógica pura,
// sin I/O; los caminos de creación y actualización DEBEN llamar a Validate
// de forma idéntica para que las reglas nunca diverjan.
package batch

import (
	"fmt"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
)

// Kinds de rechazo verificables por máquina. Se evalúan en orden, la
// primera regla que falla gana (fail-fast, sin aplicación parcial).
const (
	KindNoFeatureSelected                 = "NO_FEATURE_SELECTED"
	KindLabsAndAssessmentsRequireTraining = "LABS_AND_ASSESSMENTS_REQUIRE_TRAINING"
	KindTrainingScheduleIncomplete        = "TRAINING_SCHEDULE_INCOMPLETE"
	KindLabModeRequired                   = "LAB_MODE_REQUIRED"
	KindAssessmentWindowRequired          = "ASSESSMENT_WINDOW_REQUIRED"
)

// RuleError rechazo de una regla de configuración: Kind verificable por
// máquina + Reason legible para el operador.
type RuleError struct {
	Kind   string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Input configuración propuesta para un Batch (creación o actualización).
type Input struct {
	TrainingEnabled   bool
	LabEnabled        bool
	AssessmentEnabled bool
	Training          *entity.TrainingConfig
	Lab               *entity.LabConfig
	Assessment        *entity.AssessmentConfig
}

// Normalized configuración aceptada y lista para persistir. La única
// derivación es la de evaluación: con training activo el modo se fuerza a
// TRAINER_MANAGED/PENDING_TRAINER descartando cualquier ventana enviada;
// sin training se estampa ADMIN_MANAGED/SCHEDULED sobre la ventana enviada.
type Normalized struct {
	TrainingEnabled   bool
	LabEnabled        bool
	AssessmentEnabled bool
	Training          *entity.TrainingConfig
	Lab               *entity.LabConfig
	Assessment        *entity.AssessmentConfig

	// Warnings señala datos de calidad dudosa aceptados tal cual (ej. modo
	// de laboratorio sin sus sub-campos). No bloquean la persistencia.
	Warnings []string
}

// Validate aplica las reglas 1..5 en orden y devuelve la configuración
// normalizada o un *RuleError con la primera regla violada.
func Validate(in Input) (*Normalized, error) {
	// Regla 1: al menos un feature activo.
	if !in.TrainingEnabled && !in.LabEnabled && !in.AssessmentEnabled {
		return nil, &RuleError{
			Kind:   KindNoFeatureSelected,
			Reason: "el batch debe tener al menos un feature activo (training, labs o assessments)",
		}
	}

	// Regla 2: labs + assessments sin training es ilegal; training es el
	// feature que gobierna las agendas compuestas.
	if in.LabEnabled && in.AssessmentEnabled && !in.TrainingEnabled {
		return nil, &RuleError{
			Kind:   KindLabsAndAssessmentsRequireTraining,
			Reason: "labs y assessments solo pueden combinarse si training también está activo",
		}
	}

	out := &Normalized{
		TrainingEnabled:   in.TrainingEnabled,
		LabEnabled:        in.LabEnabled,
		AssessmentEnabled: in.AssessmentEnabled,
	}

	// Regla 3: training exige días no vacíos y horario completo.
	if in.TrainingEnabled {
		t := in.Training
		if t == nil || len(t.Days) == 0 || t.StartTime == "" || t.EndTime == "" {
			return nil, &RuleError{
				Kind:   KindTrainingScheduleIncomplete,
				Reason: "training activo requiere días de la semana, hora de inicio y hora de fin",
			}
		}
		out.Training = &entity.TrainingConfig{
			Days:      append([]string(nil), t.Days...),
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		}
	}

	// Regla 4: labs exige un modo de acceso declarado. Los sub-campos del
	// modo se aceptan tal cual; su ausencia se reporta como warning de
	// calidad de datos, nunca se descarta en silencio.
	if in.LabEnabled {
		l := in.Lab
		if l == nil || !validLabMode(l.AccessMode) {
			return nil, &RuleError{
				Kind:   KindLabModeRequired,
				Reason: "labs activo requiere un modo de acceso FIXED, QUOTA o DATE_RANGE",
			}
		}
		cp := *l
		out.Lab = &cp
		out.Warnings = append(out.Warnings, labWarnings(l)...)
	}

	// Regla 5: evaluación.
	if in.AssessmentEnabled {
		if in.TrainingEnabled {
			// La autoridad de agenda pasa al instructor: se fuerza el modo y
			// se descarta cualquier ventana enviada por el caller.
			out.Assessment = &entity.AssessmentConfig{
				Mode:   entity.AssessmentModeTrainerManaged,
				Status: entity.AssessmentStatusPendingTrainer,
			}
		} else {
			a := in.Assessment
			if a == nil || a.StartAt == nil || a.EndAt == nil {
				return nil, &RuleError{
					Kind:   KindAssessmentWindowRequired,
					Reason: "assessment sin training requiere ventana explícita de inicio y fin",
				}
			}
			out.Assessment = &entity.AssessmentConfig{
				Mode:    entity.AssessmentModeAdminManaged,
				Status:  entity.AssessmentStatusScheduled,
				StartAt: a.StartAt,
				EndAt:   a.EndAt,
			}
		}
	}

	return out, nil
}

func validLabMode(mode string) bool {
	switch mode {
	case entity.LabModeFixed, entity.LabModeQuota, entity.LabModeDateRange:
		return true
	}
	return false
}

// labWarnings reporta sub-campos faltantes del modo declarado.
func labWarnings(l *entity.LabConfig) []string {
	var ws []string
	switch l.AccessMode {
	case entity.LabModeFixed:
		if l.FixedHours == nil {
			ws = append(ws, "lab FIXED sin horas fijas declaradas")
		}
	case entity.LabModeQuota:
		if l.QuotaHours == nil {
			ws = append(ws, "lab QUOTA sin bolsa de horas declarada")
		}
	case entity.LabModeDateRange:
		if l.StartDate == nil || l.EndDate == nil {
			ws = append(ws, "lab DATE_RANGE sin rango de fechas completo")
		}
	}
	return ws
}
