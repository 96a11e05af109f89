package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/tagihan-api/internal/domain/entity"
)

// Mode modo del formulario según exista o no un subject.
type Mode string

const (
	ModeCreate Mode = "CREATE"
	ModeEdit   Mode = "EDIT"
)

// State estado del ciclo de envío: IDLE → VALIDATING → ACCEPTED | REJECTED → IDLE.
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateAccepted   State = "ACCEPTED"
	StateRejected   State = "REJECTED"
)

// ErrSessionClosed operación de edición o envío sobre una sesión cerrada.
var ErrSessionClosed = errors.New("la sesión de edición está cerrada")

// Submitter recibe un CustomerInput aceptado. Con targetID actualiza ese registro
// (sin tocar id ni bills); sin él crea uno nuevo con bills vacío.
type Submitter interface {
	Submit(ctx context.Context, in entity.CustomerInput, targetID *int64) error
}

// SubmitFunc adapta una función a Submitter.
type SubmitFunc func(ctx context.Context, in entity.CustomerInput, targetID *int64) error

// Submit implementa Submitter.
func (f SubmitFunc) Submit(ctx context.Context, in entity.CustomerInput, targetID *int64) error {
	return f(ctx, in, targetID)
}

type sessionKey struct {
	subjectID  int64
	hasSubject bool
	open       bool
}

func keyOf(subject *entity.Customer, open bool) sessionKey {
	if subject == nil {
		return sessionKey{open: open}
	}
	return sessionKey{subjectID: subject.ID, hasSubject: true, open: open}
}

// Session sesión de alta/edición de un cliente. Tiene un único escritor; no es segura
// para uso concurrente.
type Session struct {
	subject *entity.Customer
	open    bool
	key     sessionKey
	seeded  bool
	fields  WorkingFields
	state   State
	outcome State
}

// NewSession crea una sesión cerrada y en reposo.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Open abre la sesión para el subject (nil = alta nueva).
func (s *Session) Open(subject *entity.Customer) {
	s.Reconcile(subject, true)
}

// Close cierra sin enviar y descarta los campos de trabajo.
func (s *Session) Close() {
	s.Reconcile(nil, false)
}

// Reconcile re-siembra los campos cuando cambia (identidad del subject, abierta).
// Con la misma clave conserva lo que el usuario haya editado.
func (s *Session) Reconcile(subject *entity.Customer, open bool) {
	k := keyOf(subject, open)
	if !s.seeded || k != s.key {
		s.fields = Seed(subject, open)
		s.key = k
		s.seeded = true
	}
	s.subject = subject
	s.open = open
}

// IsOpen indica si la sesión acepta ediciones.
func (s *Session) IsOpen() bool { return s.open }

// Mode devuelve EDIT si hay subject.
func (s *Session) Mode() Mode {
	if s.subject != nil {
		return ModeEdit
	}
	return ModeCreate
}

// TargetID identidad del registro a sobrescribir; nil en modo CREATE.
func (s *Session) TargetID() *int64 {
	if s.subject == nil {
		return nil
	}
	id := s.subject.ID
	return &id
}

// Fields copia de los campos de trabajo actuales.
func (s *Session) Fields() WorkingFields { return s.fields }

// State estado actual del ciclo de envío.
func (s *Session) State() State { return s.state }

// Outcome resultado del último envío validado (ACCEPTED o REJECTED), vacío si no hubo.
func (s *Session) Outcome() State { return s.outcome }

// Set edita un campo de la sesión abierta.
func (s *Session) Set(field Field, value string) error {
	if !s.open {
		return ErrSessionClosed
	}
	return s.fields.Set(field, value)
}

// Submit valida y, si procede, entrega el input al Submitter y cierra la sesión.
// Un rechazo deja la sesión abierta con los campos intactos y devuelve *ValidationError.
// Un fallo del Submitter también deja la sesión abierta.
func (s *Session) Submit(ctx context.Context, sink Submitter) (entity.CustomerInput, error) {
	if !s.open {
		return entity.CustomerInput{}, ErrSessionClosed
	}
	s.state = StateValidating
	in, err := Validate(s.fields)
	if err != nil {
		s.outcome = StateRejected
		s.state = StateIdle
		return entity.CustomerInput{}, err
	}
	s.state = StateAccepted
	if err := sink.Submit(ctx, in, s.TargetID()); err != nil {
		s.state = StateIdle
		return entity.CustomerInput{}, fmt.Errorf("enviar cliente: %w", err)
	}
	s.outcome = StateAccepted
	s.state = StateIdle
	s.Close()
	return in, nil
}
