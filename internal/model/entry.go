package model

import (
	"github.com/Tiliavir/cora-hours/internal/shift"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// Entry is one registered time span ("registro") as exchanged with the CORA
// API. JSON names follow the API.
type Entry struct {
	ID            int64   `json:"id,omitempty" yaml:"id"`
	ConsultantID  int64   `json:"consultor_id,omitempty" yaml:"consultor_id,omitempty"`
	Consultant    string  `json:"consultor,omitempty" yaml:"consultor,omitempty"`
	Username      string  `json:"usuario_consultor,omitempty" yaml:"usuario_consultor,omitempty"`
	Team          string  `json:"equipo,omitempty" yaml:"equipo,omitempty"`
	Date          string  `json:"fecha" yaml:"fecha"`
	Client        string  `json:"cliente" yaml:"cliente"`
	Module        string  `json:"modulo,omitempty" yaml:"modulo,omitempty"`
	ClientCase    string  `json:"nroCasoCliente,omitempty" yaml:"nroCasoCliente,omitempty"`
	InternalCase  string  `json:"nroCasoInterno,omitempty" yaml:"nroCasoInterno,omitempty"`
	EscalatedCase string  `json:"nroCasoEscaladoSap,omitempty" yaml:"nroCasoEscaladoSap,omitempty"`
	Task          string  `json:"tipoTarea" yaml:"tipoTarea"`
	Start         string  `json:"horaInicio" yaml:"horaInicio"`
	End           string  `json:"horaFin" yaml:"horaFin"`
	Hours         float64 `json:"tiempoInvertido" yaml:"tiempoInvertido"`
	BillableHours float64 `json:"tiempoFacturable" yaml:"tiempoFacturable"`
	ExtraHours    string  `json:"horasAdicionales" yaml:"horasAdicionales"`
	TotalHours    float64 `json:"totalHoras" yaml:"totalHoras"`
	Shift         string  `json:"horarioTrabajo,omitempty" yaml:"horarioTrabajo,omitempty"`
	Description   string  `json:"descripcion,omitempty" yaml:"descripcion,omitempty"`
	Locked        bool    `json:"bloqueado,omitempty" yaml:"bloqueado,omitempty"`
}

// Owner resolves the entry's owner identity.
func (e Entry) Owner() shift.Owner {
	return shift.NewOwner(e.ConsultantID, e.Username, e.Consultant)
}

// DateKey returns the entry date as YYYY-MM-DD.
func (e Entry) DateKey() string {
	return timecalc.DateKey(e.Date)
}

// ShiftEntry converts e for the overlap check.
func (e Entry) ShiftEntry() shift.Entry {
	return shift.Entry{
		ID:    e.ID,
		Owner: e.Owner(),
		Date:  e.DateKey(),
		Start: e.Start,
		End:   e.End,
	}
}

// ShiftEntries converts a snapshot for the overlap check, keeping order.
func ShiftEntries(entries []Entry) []shift.Entry {
	out := make([]shift.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.ShiftEntry()
	}
	return out
}

// Payload is the body sent to create or edit an entry. The API resolves the
// consultant from Login and checks edit permission with Role.
type Payload struct {
	Entry
	Login string `json:"usuario"`
	Role  string `json:"rol,omitempty"`
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}
