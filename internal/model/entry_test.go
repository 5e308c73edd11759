package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/cora-hours/internal/shift"
)

const apiEntry = `{
	"id": 41,
	"consultor_id": 5,
	"consultor": " Ana Perez ",
	"usuario_consultor": "Ana.Perez",
	"equipo": "Finanzas",
	"fecha": "2024-01-10T00:00:00",
	"cliente": "ACME",
	"modulo": "FI",
	"tipoTarea": "Soporte",
	"horaInicio": "08:00",
	"horaFin": "10:30",
	"tiempoInvertido": 2.5,
	"tiempoFacturable": 2,
	"horasAdicionales": "No",
	"totalHoras": 2.5,
	"horarioTrabajo": "08:00-18:00",
	"bloqueado": true
}`

func TestDecodeAPIEntry(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(apiEntry), &e))

	assert.Equal(t, int64(41), e.ID)
	assert.Equal(t, "2024-01-10", e.DateKey())
	assert.Equal(t, 2.5, e.Hours)
	assert.Equal(t, float64(2), e.BillableHours)
	assert.True(t, e.Locked)

	owner := e.Owner()
	assert.Equal(t, "ana.perez", owner.Username)
	assert.Equal(t, "Ana Perez", owner.DisplayName)
	assert.Equal(t, shift.OwnerByID, owner.Ref().Kind)
}

func TestShiftEntries(t *testing.T) {
	entries := []Entry{
		{ID: 2, Username: "juan", Date: "2024-01-10 00:00:00", Start: "09:00", End: "12:00"},
		{ID: 1, ConsultantID: 5, Date: "2024-01-10", Start: "08:00", End: "10:00"},
	}

	got := ShiftEntries(entries)
	require.Len(t, got, 2)
	assert.Equal(t, shift.Entry{
		ID:    2,
		Owner: shift.Owner{Username: "juan"},
		Date:  "2024-01-10",
		Start: "09:00",
		End:   "12:00",
	}, got[0])
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(5), got[1].Owner.ID)
}

func TestPayloadFlattensEntry(t *testing.T) {
	p := Payload{
		Entry: Entry{Date: "2024-01-10", Client: "ACME", Task: "Soporte", Start: "08:00", End: "09:00", Hours: 1, ExtraHours: "No"},
		Login: "ana.perez",
		Role:  "CONSULTOR",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "ana.perez", fields["usuario"])
	assert.Equal(t, "CONSULTOR", fields["rol"])
	assert.Equal(t, "2024-01-10", fields["fecha"])
	assert.Equal(t, "08:00", fields["horaInicio"])
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "bloqueado")
}
