package etl

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/erp-migrator/internal/app/models"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

// Stage names, in the order a row is migrated
const (
	StageUser               = "user"
	StageStudent            = "student"
	StageAccommodation      = "accommodation"
	StageAdmission          = "admission"
	StageParent             = "parent"
	StageGuardian           = "guardian"
	StageHealth             = "health"
	StageEmergencyContact   = "emergency_contact"
	StagePersonalDetails    = "personal_details"
	StageAcademicHistory    = "academic_history"
	StageAcademicIdentifier = "academic_identifier"
	StageTransportDetails   = "transport_details"
)

// StageOrder lists every stage in execution order.
var StageOrder = []string{
	StageUser,
	StageStudent,
	StageAccommodation,
	StageAdmission,
	StageParent,
	StageGuardian,
	StageHealth,
	StageEmergencyContact,
	StagePersonalDetails,
	StageAcademicHistory,
	StageAcademicIdentifier,
	StageTransportDetails,
}

// StageError is a failure of one stage of one row
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageErrors collects every StageError in err's tree, including those
// combined with errors.Join.
func StageErrors(err error) []*StageError {
	switch x := err.(type) {
	case *StageError:
		return []*StageError{x}
	case interface{ Unwrap() []error }:
		var out []*StageError
		for _, e := range x.Unwrap() {
			out = append(out, StageErrors(e)...)
		}
		return out
	case interface{ Unwrap() error }:
		return StageErrors(x.Unwrap())
	}
	return nil
}

type childStage struct {
	name string
	run  func(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) error
}

func stage[T any](name string, f func(context.Context, Stores, *legacymodels.Student, *models.Student) (*T, error)) childStage {
	return childStage{
		name: name,
		run: func(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) error {
			_, err := f(ctx, s, row, student)
			return err
		},
	}
}

// Orchestrator migrates a single legacy row through every stage. Each stage
// runs in its own transaction.
type Orchestrator struct {
	target    Target
	upserters *Upserters
	metrics   *Metrics
	log       zerolog.Logger
	children  []childStage
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(target Target, upserters *Upserters, metrics *Metrics, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		target:    target,
		upserters: upserters,
		metrics:   metrics,
		log:       log,
		children: []childStage{
			stage(StageAccommodation, upserters.Accommodation),
			stage(StageAdmission, upserters.Admission),
			stage(StageParent, upserters.Parent),
			stage(StageGuardian, upserters.Guardian),
			stage(StageHealth, upserters.Health),
			stage(StageEmergencyContact, upserters.EmergencyContact),
			stage(StagePersonalDetails, upserters.PersonalDetails),
			stage(StageAcademicHistory, upserters.AcademicHistory),
			stage(StageAcademicIdentifier, upserters.AcademicIdentifier),
			stage(StageTransportDetails, upserters.TransportDetails),
		},
	}
}

// Process migrates row. A failing user or student stage aborts the row and
// the student is nil. Failures of later stages are joined into the returned
// error while the remaining stages still run.
func (o *Orchestrator) Process(ctx context.Context, row *legacymodels.Student) (*models.Student, error) {
	var user *models.User
	err := o.runStage(ctx, StageUser, func(ctx context.Context, s Stores) error {
		var err error
		user, err = o.upserters.User(ctx, s, row)
		return err
	})
	if err != nil {
		return nil, err
	}

	var student *models.Student
	err = o.runStage(ctx, StageStudent, func(ctx context.Context, s Stores) error {
		var err error
		student, err = o.upserters.Student(ctx, s, row, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, st := range o.children {
		if ctx.Err() != nil {
			errs = append(errs, &StageError{Stage: st.name, Err: ctx.Err()})
			break
		}
		err := o.runStage(ctx, st.name, func(ctx context.Context, s Stores) error {
			return st.run(ctx, s, row, student)
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return student, errors.Join(errs...)
}

// runStage executes fn in a transaction. A unique violation means another
// writer inserted the row first, so the stage is retried once and its
// existence check picks that row up.
func (o *Orchestrator) runStage(ctx context.Context, name string, fn func(ctx context.Context, s Stores) error) error {
	err := o.target.InTx(ctx, fn)
	if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		o.log.Debug().Str("stage", name).Err(err).Msg("Retrying stage after concurrent insert")
		err = o.target.InTx(ctx, fn)
	}
	if err != nil {
		o.metrics.StageFailed(name)
		return &StageError{Stage: name, Err: err}
	}
	return nil
}
